package service

import (
	"fmt"

	"family-planner/internal/model"
)

// AccessPolicy maps sign-in credentials to the categories that credential
// may see. The mapping is keyed by PIN, not by the admin flag.
type AccessPolicy struct {
	byPIN map[string][]model.CategoryID
}

// NewAccessPolicy builds the policy from the raw config mapping and rejects
// entries that reference unknown categories.
func NewAccessPolicy(raw map[string][]string) (*AccessPolicy, error) {
	byPIN := make(map[string][]model.CategoryID, len(raw))
	for pin, ids := range raw {
		set := make([]model.CategoryID, 0, len(ids))
		for _, id := range ids {
			cid := model.CategoryID(id)
			if !model.ValidCategoryID(cid) {
				return nil, fmt.Errorf("access policy: pin %q: unknown category %q", pin, id)
			}
			set = append(set, cid)
		}
		byPIN[pin] = set
	}
	return &AccessPolicy{byPIN: byPIN}, nil
}

// AccessibleCategories returns the categories the user may see, in display
// order. A nil user or a PIN without a policy entry yields an empty set;
// unknown credentials are simply locked out, never an error.
func (p *AccessPolicy) AccessibleCategories(user *model.User) []model.Category {
	if user == nil {
		return nil
	}
	allowed := p.byPIN[user.PIN]
	if len(allowed) == 0 {
		return nil
	}

	var out []model.Category
	for _, cat := range model.Categories() {
		if containsCategory(allowed, cat.ID) {
			out = append(out, cat)
		}
	}
	return out
}

// IsTaskVisible applies the two-step visibility rule: the user's access set
// must contain the task's category, and the task must either be shared or be
// a personal task owned by the user. Any other visibility value denies.
func (p *AccessPolicy) IsTaskVisible(task model.Task, user *model.User) bool {
	if user == nil {
		return false
	}
	if !containsCategory(p.byPIN[user.PIN], task.CategoryID) {
		return false
	}
	switch task.Visibility {
	case model.VisibilityShared:
		return true
	case model.VisibilityPersonal:
		return task.Owner == user.Name
	default:
		return false
	}
}

// VisibleTasks filters tasks down to those the user may see, preserving
// store order.
func (p *AccessPolicy) VisibleTasks(tasks []model.Task, user *model.User) []model.Task {
	var out []model.Task
	for _, task := range tasks {
		if p.IsTaskVisible(task, user) {
			out = append(out, task)
		}
	}
	return out
}

// CanUseCategory reports whether the user may file tasks under the category.
func (p *AccessPolicy) CanUseCategory(user *model.User, id model.CategoryID) bool {
	if user == nil {
		return false
	}
	return containsCategory(p.byPIN[user.PIN], id)
}

func containsCategory(set []model.CategoryID, id model.CategoryID) bool {
	for _, cid := range set {
		if cid == id {
			return true
		}
	}
	return false
}
