package repository

import (
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/id"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/status"
)

// AddNewDiscussionCategory validates and creates a root-level category.
func (r *Repository) AddNewDiscussionCategory(rc RequestContext, entityID id.ID, name, description string) (id.ID, status.Code) {
	cfg := r.Config.Load().DiscussionCategory
	if code := checkLength(name, cfg.MinNameLength, cfg.MaxNameLength); !code.OK() {
		return id.Zero, code
	}
	if code := checkLength(description, 0, cfg.MaxDescriptionLength); !code.OK() {
		return id.Zero, code
	}

	var result status.Code
	var newID id.ID
	r.Store.Guard.Write(func() {
		cat := r.Store.CreateCategory(entityID, name, description)
		result = r.Store.InsertCategory(cat)
		if result.OK() {
			newID = cat.ID()
		}
	})
	if !result.OK() {
		return id.Zero, result
	}

	data := events.NewPayload(28 + len(name) + len(description)).ID(newID).String(name).String(description).Build()
	r.emit(events.AddNewDiscussionCategory, rc, data, "add new discussion category", newID.String())
	return newID, status.OK
}

// ChangeDiscussionCategoryName validates and renames a category.
func (r *Repository) ChangeDiscussionCategoryName(rc RequestContext, category id.ID, newName string) status.Code {
	cfg := r.Config.Load().DiscussionCategory
	if code := checkLength(newName, cfg.MinNameLength, cfg.MaxNameLength); !code.OK() {
		return code
	}

	var result status.Code
	r.Store.Guard.Write(func() {
		cat, ok := r.Store.GetCategoryByID(category)
		if !ok {
			result = status.NotFound
			return
		}
		cat.SetName(newName)
		result = status.OK
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(24 + len(newName)).ID(category).String(newName).Build()
	r.emit(events.ChangeDiscussionCategoryName, rc, data, "change discussion category name", category.String())
	return status.OK
}

// ChangeDiscussionCategoryParent validates and reassigns a category's
// parent, rejecting any move that would make the category its own
// descendant (spec.md invariant 9). newParent is id.Zero to move category
// to the root of the tree.
func (r *Repository) ChangeDiscussionCategoryParent(rc RequestContext, category, newParent id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		cat, ok := r.Store.GetCategoryByID(category)
		if !ok {
			result = status.NotFound
			return
		}
		var newParentHandle pool.Handle
		if !newParent.IsZero() {
			parent, ok := r.Store.GetCategoryByID(newParent)
			if !ok {
				result = status.NotFound
				return
			}
			newParentHandle = parent.Handle()
		}
		result = r.Store.SetCategoryParent(cat.Handle(), newParentHandle)
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(32).ID(category).ID(newParent).Build()
	r.emit(events.ChangeDiscussionCategoryParent, rc, data, "change discussion category parent", category.String())
	return status.OK
}

// DeleteDiscussionCategory validates and deletes a category, re-parenting
// its children to root and untagging its tags (spec.md invariant 7).
func (r *Repository) DeleteDiscussionCategory(rc RequestContext, category id.ID) status.Code {
	var result status.Code
	r.Store.Guard.Write(func() {
		cat, ok := r.Store.GetCategoryByID(category)
		if !ok {
			result = status.NotFound
			return
		}
		result = r.Store.DeleteCategory(cat.Handle())
	})
	if !result.OK() {
		return result
	}

	data := events.NewPayload(16).ID(category).Build()
	r.emit(events.DeleteDiscussionCategory, rc, data, "delete discussion category", category.String())
	return status.OK
}
