// Package workflow drives a word's editorial review through the fixed stage
// ladder EDITOR_REVIEW -> SENIOR_EDITOR_REVIEW -> EDITOR_IN_CHIEF_REVIEW ->
// APPROVED and keeps the word's status in step with it.
package workflow

import "github.com/maithilikosh/api/internal/model"

type transitionKey struct {
	Stage string
	Role  string
}

// The ladder is data: each stage advances only under its required reviewer
// role. Anything not in the table is a rejected transition.
var stageTransitions = map[transitionKey]string{
	{model.StageEditorReview, model.RoleEditor}:               model.StageSeniorEditorReview,
	{model.StageSeniorEditorReview, model.RoleSeniorEditor}:   model.StageEditorInChiefReview,
	{model.StageEditorInChiefReview, model.RoleEditorInChief}: model.StageApproved,
}

// NextStage returns the stage an approval by the given role advances to, and
// whether the transition is allowed at all.
func NextStage(currentStage, role string) (string, bool) {
	next, ok := stageTransitions[transitionKey{currentStage, role}]
	return next, ok
}

// StageForRole returns the stage the given role reviews, if it reviews one.
func StageForRole(role string) (string, bool) {
	for key := range stageTransitions {
		if key.Role == role {
			return key.Stage, true
		}
	}
	return "", false
}
