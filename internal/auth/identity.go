package auth

// Identity is the authenticated caller passed explicitly into core
// operations. A nil *Identity means an anonymous/public caller.
type Identity struct {
	ID   string
	Role string
}
