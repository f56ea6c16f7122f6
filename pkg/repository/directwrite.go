package repository

import (
	"fmt"
	"time"

	"github.com/forumkit/forumcore/pkg/collation"
	"github.com/forumkit/forumcore/pkg/entity"
	"github.com/forumkit/forumcore/pkg/events"
	"github.com/forumkit/forumcore/pkg/log"
	"github.com/forumkit/forumcore/pkg/pool"
	"github.com/forumkit/forumcore/pkg/replay"
)

// DirectWriter replays a durable event log straight into a store, bypassing
// validation, authorization and re-emission: the events already passed all
// three the first time they were appended. It implements replay.Dispatcher.
type DirectWriter struct {
	Repo *Repository
}

// NewDirectWriter returns a Dispatcher that rebuilds repo's store from a
// decoded event stream.
func NewDirectWriter(repo *Repository) *DirectWriter {
	return &DirectWriter{Repo: repo}
}

// Apply decodes one frame and replays it under the store's write lock.
func (w *DirectWriter) Apply(f replay.Frame) error {
	d, err := events.Decode(f.Payload)
	if err != nil {
		return fmt.Errorf("directwrite: decode: %w", err)
	}

	var applyErr error
	w.Repo.Store.Guard.Write(func() {
		applyErr = w.apply(d)
	})
	if applyErr != nil {
		return fmt.Errorf("directwrite: apply %s: %w", d.Type, applyErr)
	}
	return nil
}

func (w *DirectWriter) apply(d events.Decoded) error {
	s := w.Repo.Store
	data := d.Data
	performer := d.Context.PerformingUser

	switch d.Type {
	case events.AddNewUser:
		entityID := data.ID()
		auth := data.String()
		name := data.String()
		u := s.CreateUser(entityID, name, auth, d.Context.Timestamp)
		if code := s.InsertUser(u); !code.OK() {
			return fmt.Errorf("insert user: %s", code)
		}

	case events.ChangeUserName:
		user, newName := data.ID(), data.String()
		if u, ok := s.GetUserByID(user); ok {
			u.SetName(newName, collation.DeriveKey(newName))
		}

	case events.ChangeUserInfo:
		user, v := data.ID(), data.String()
		if u, ok := s.GetUserByID(user); ok {
			u.SetInfo(v)
		}

	case events.ChangeUserTitle:
		user, v := data.ID(), data.String()
		if u, ok := s.GetUserByID(user); ok {
			u.SetTitle(v)
		}

	case events.ChangeUserSignature:
		user, v := data.ID(), data.String()
		if u, ok := s.GetUserByID(user); ok {
			u.SetSignature(v)
		}

	case events.ChangeUserLogo:
		user, logo := data.ID(), data.Bytes()
		if u, ok := s.GetUserByID(user); ok {
			u.SetLogo(logo)
		}

	case events.DeleteUser:
		user := data.ID()
		if u, ok := s.GetUserByID(user); ok {
			s.DeleteUser(u.Handle())
		}

	case events.AddNewDiscussionThread:
		entityID, name := data.ID(), data.String()
		if u, ok := s.GetUserByID(performer); ok {
			t := s.CreateThread(entityID, name, u.Handle(), d.Context.Timestamp)
			if code := s.InsertThread(t); code.OK() {
				u.AddOwnedThread(t.Handle())
			}
		}

	case events.ChangeDiscussionThreadName:
		thread, newName := data.ID(), data.String()
		if t, ok := s.GetThreadByID(thread); ok {
			t.SetName(newName, collation.DeriveKey(newName))
		}

	case events.ChangeDiscussionThreadPinDisplayOrder:
		thread, order := data.ID(), data.U16()
		if t, ok := s.GetThreadByID(thread); ok {
			t.SetPinDisplayOrder(order)
		}

	case events.DeleteDiscussionThread:
		thread := data.ID()
		if t, ok := s.GetThreadByID(thread); ok {
			s.DeleteThread(t.Handle())
		}

	case events.MergeDiscussionThreads:
		from, into := data.ID(), data.ID()
		fromT, ok1 := s.GetThreadByID(from)
		intoT, ok2 := s.GetThreadByID(into)
		if ok1 && ok2 {
			s.MergeThreads(fromT.Handle(), intoT.Handle())
		}

	case events.SubscribeToDiscussionThread:
		thread := data.ID()
		u, ok1 := s.GetUserByID(performer)
		t, ok2 := s.GetThreadByID(thread)
		if ok1 && ok2 && u.Subscribe(t.Handle()) {
			t.AddSubscriber(u.Handle())
		}

	case events.UnsubscribeFromDiscussionThread:
		thread := data.ID()
		u, ok1 := s.GetUserByID(performer)
		t, ok2 := s.GetThreadByID(thread)
		if ok1 && ok2 && u.Unsubscribe(t.Handle()) {
			t.RemoveSubscriber(u.Handle())
		}

	case events.IncrementDiscussionThreadVisits:
		thread, count := data.ID(), data.U32()
		if t, ok := s.GetThreadByID(thread); ok {
			t.IncrementVisitCount(uint64(count))
		}

	case events.AddNewDiscussionThreadMessage:
		entityID, thread, content := data.ID(), data.ID(), data.String()
		t, ok1 := s.GetThreadByID(thread)
		u, ok2 := s.GetUserByID(performer)
		if ok1 && ok2 {
			m := s.CreateMessage(entityID, t.Handle(), u.Handle(), content, d.Context.Timestamp)
			s.InsertMessage(m)
		}

	case events.ChangeDiscussionThreadMessageContent:
		message, newContent, reason := data.ID(), data.String(), data.String()
		if m, ok := s.GetMessageByID(message); ok {
			m.SetContent(newContent, reason, d.Context.Timestamp)
		}

	case events.MoveDiscussionThreadMessage:
		message, intoThread := data.ID(), data.ID()
		m, ok1 := s.GetMessageByID(message)
		t, ok2 := s.GetThreadByID(intoThread)
		if ok1 && ok2 {
			s.MoveMessage(m.Handle(), t.Handle())
		}

	case events.DeleteDiscussionThreadMessage:
		message := data.ID()
		if m, ok := s.GetMessageByID(message); ok {
			s.DeleteMessage(m.Handle())
		}

	case events.DiscussionThreadMessageUpVote:
		message := data.ID()
		m, ok1 := s.GetMessageByID(message)
		u, ok2 := s.GetUserByID(performer)
		if ok1 && ok2 {
			s.CastUpVote(m.Handle(), u.Handle(), d.Context.Timestamp)
		}

	case events.DiscussionThreadMessageDownVote:
		message := data.ID()
		m, ok1 := s.GetMessageByID(message)
		u, ok2 := s.GetUserByID(performer)
		if ok1 && ok2 {
			s.CastDownVote(m.Handle(), u.Handle(), d.Context.Timestamp)
		}

	case events.DiscussionThreadMessageResetVote:
		message := data.ID()
		m, ok1 := s.GetMessageByID(message)
		u, ok2 := s.GetUserByID(performer)
		if ok1 && ok2 {
			s.ResetMessageVote(m.Handle(), u.Handle())
		}

	case events.RecordDiscussionThreadMessageQuote:
		sourceMessage, quotingUser := data.ID(), data.ID()
		m, ok1 := s.GetMessageByID(sourceMessage)
		u, ok2 := s.GetUserByID(quotingUser)
		if ok1 && ok2 {
			u.RecordQuote(entity.QuoteRecord{SourceMessage: m.Handle(), At: d.Context.Timestamp})
		}

	case events.AddCommentToDiscussionThreadMessage:
		entityID, message, content := data.ID(), data.ID(), data.String()
		m, ok1 := s.GetMessageByID(message)
		u, ok2 := s.GetUserByID(performer)
		if ok1 && ok2 {
			cm := s.CreateComment(entityID, m.Handle(), u.Handle(), content, d.Context.Timestamp)
			s.InsertComment(cm)
		}

	case events.SolveDiscussionThreadMessageComment:
		comment := data.ID()
		if cm, ok := s.GetCommentByID(comment); ok {
			s.SolveComment(cm.Handle())
		}

	case events.AddNewDiscussionTag:
		entityID, name := data.ID(), data.String()
		tag := s.CreateTag(entityID, name, d.Context.Timestamp)
		s.InsertTag(tag)

	case events.ChangeDiscussionTagName:
		tag, newName := data.ID(), data.String()
		if t, ok := s.GetTagByID(tag); ok {
			t.SetName(newName, collation.DeriveKey(newName))
		}

	case events.DeleteDiscussionTag:
		tag := data.ID()
		if t, ok := s.GetTagByID(tag); ok {
			s.DeleteTag(t.Handle())
		}

	case events.ChangeDiscussionTagUiBlob:
		tag, blob := data.ID(), data.Bytes()
		if t, ok := s.GetTagByID(tag); ok {
			t.SetUiBlob(blob)
		}

	case events.AddDiscussionTagToThread:
		tag, thread := data.ID(), data.ID()
		t, ok1 := s.GetTagByID(tag)
		th, ok2 := s.GetThreadByID(thread)
		if ok1 && ok2 {
			s.TagThread(t.Handle(), th.Handle())
		}

	case events.RemoveDiscussionTagFromThread:
		tag, thread := data.ID(), data.ID()
		t, ok1 := s.GetTagByID(tag)
		th, ok2 := s.GetThreadByID(thread)
		if ok1 && ok2 {
			s.UntagThread(t.Handle(), th.Handle())
		}

	case events.MergeDiscussionTags:
		from, into := data.ID(), data.ID()
		fromTag, ok1 := s.GetTagByID(from)
		intoTag, ok2 := s.GetTagByID(into)
		if ok1 && ok2 {
			for _, h := range fromTag.Threads().Slice() {
				s.UntagThread(fromTag.Handle(), h)
				s.TagThread(intoTag.Handle(), h)
			}
			s.DeleteTag(fromTag.Handle())
		}

	case events.AddNewDiscussionCategory:
		entityID, name, description := data.ID(), data.String(), data.String()
		cat := s.CreateCategory(entityID, name, description)
		s.InsertCategory(cat)

	case events.ChangeDiscussionCategoryName:
		category, newName := data.ID(), data.String()
		if c, ok := s.GetCategoryByID(category); ok {
			c.SetName(newName)
		}

	case events.DeleteDiscussionCategory:
		category := data.ID()
		if c, ok := s.GetCategoryByID(category); ok {
			s.DeleteCategory(c.Handle())
		}

	case events.AddDiscussionTagToCategory:
		tag, category := data.ID(), data.ID()
		t, ok1 := s.GetTagByID(tag)
		c, ok2 := s.GetCategoryByID(category)
		if ok1 && ok2 {
			s.TagCategory(t.Handle(), c.Handle())
		}

	case events.RemoveDiscussionTagFromCategory:
		tag, category := data.ID(), data.ID()
		t, ok1 := s.GetTagByID(tag)
		c, ok2 := s.GetCategoryByID(category)
		if ok1 && ok2 {
			s.UntagCategory(t.Handle(), c.Handle())
		}

	case events.ChangeDiscussionCategoryParent:
		category, newParent := data.ID(), data.ID()
		if c, ok := s.GetCategoryByID(category); ok {
			var newParentHandle pool.Handle
			if newParent.IsZero() {
				s.SetCategoryParent(c.Handle(), newParentHandle)
			} else if parent, ok := s.GetCategoryByID(newParent); ok {
				s.SetCategoryParent(c.Handle(), parent.Handle())
			}
		}

	case events.ChangeDiscussionThreadRequiredPrivilege,
		events.ChangeDiscussionThreadMessageRequiredPrivilege,
		events.ChangeDiscussionTagRequiredPrivilege,
		events.ChangeDiscussionCategoryRequiredPrivilege,
		events.ChangeForumWideRequiredPrivilege:
		target := data.ID()
		typ := entity.PrivilegeType(data.U16())
		value := entity.Value(data.I16())
		s.Privileges.SetRequiredPrivilege(requiredKindOf(d.Type), target, typ, value)

	case events.ChangeForumWideDefaultPrivilegeLevel:
		_ = data.U16() // duration enum, informational only
		value := entity.Value(data.I16())
		seconds := data.I64()
		s.Privileges.SetForumWideDefault(value, time.Duration(seconds) * time.Second)

	case events.AssignDiscussionThreadPrivilege,
		events.AssignDiscussionThreadMessagePrivilege,
		events.AssignDiscussionTagPrivilege,
		events.AssignDiscussionCategoryPrivilege,
		events.AssignForumWidePrivilege:
		target := data.ID()
		user := data.ID()
		value := entity.Value(data.I16())
		seconds := data.I64()
		s.Privileges.AssignPrivilege(assignKindOf(d.Type), target, user, value, time.Duration(seconds) * time.Second, d.Context.Timestamp)

	default:
		log.WithComponent("replay").Warn().Str("event", d.Type.String()).Msg("skipping unknown event type")
		return nil
	}

	if err := data.Err(); err != nil {
		return err
	}
	return nil
}

func requiredKindOf(t events.Type) entity.PrivilegeTargetKind {
	switch t {
	case events.ChangeDiscussionThreadRequiredPrivilege:
		return entity.PrivilegeTargetThread
	case events.ChangeDiscussionThreadMessageRequiredPrivilege:
		return entity.PrivilegeTargetMessage
	case events.ChangeDiscussionTagRequiredPrivilege:
		return entity.PrivilegeTargetTag
	case events.ChangeDiscussionCategoryRequiredPrivilege:
		return entity.PrivilegeTargetCategory
	default:
		return entity.PrivilegeTargetForumWide
	}
}

func assignKindOf(t events.Type) entity.PrivilegeTargetKind {
	switch t {
	case events.AssignDiscussionThreadPrivilege:
		return entity.PrivilegeTargetThread
	case events.AssignDiscussionThreadMessagePrivilege:
		return entity.PrivilegeTargetMessage
	case events.AssignDiscussionTagPrivilege:
		return entity.PrivilegeTargetTag
	case events.AssignDiscussionCategoryPrivilege:
		return entity.PrivilegeTargetCategory
	default:
		return entity.PrivilegeTargetForumWide
	}
}
