package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/school-portal/internal/domain"
	apperrors "github.com/spec-kit/school-portal/pkg/util"
)

func TestVoiceRoomRequestFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	request, err := f.inbox.RequestVoiceRoom(ctx, parentActor, "1")
	require.NoError(t, err)
	assert.Equal(t, domain.VoiceRoomPending, request.Status)
	assert.Equal(t, "ولي/ة أمر Rima", request.ParentName)
	assert.Equal(t, "3 / A", request.StudentClass)

	inbox, err := f.inbox.Inbox(ctx, teacherActor)
	require.NoError(t, err)
	require.Len(t, inbox.VoiceRooms, 1)
	assert.Empty(t, inbox.Emails)

	other := domain.Session{Role: domain.SessionRoleTeacher, Email: "sarah.q@school.edu.sa"}
	otherInbox, err := f.inbox.Inbox(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, otherInbox.VoiceRooms)

	_, err = f.inbox.RespondVoiceRoom(ctx, other, request.ID, true)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	answered, err := f.inbox.RespondVoiceRoom(ctx, teacherActor, request.ID, true)
	require.NoError(t, err)
	assert.Equal(t, domain.VoiceRoomAccepted, answered.Status)

	_, err = f.inbox.RespondVoiceRoom(ctx, teacherActor, request.ID, false)
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
}

func TestVoiceRoomRequiresActiveStaff(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.directory.ToggleFreeze(ctx, adminActor, "1")
	require.NoError(t, err)

	_, err = f.inbox.RequestVoiceRoom(ctx, parentActor, "1")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = f.inbox.RequestVoiceRoom(ctx, parentActor, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = f.inbox.RequestVoiceRoom(ctx, teacherActor, "2")
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestInquiryReadAndReply(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.inbox.SendInquiry(ctx, parentActor, InquiryInput{StaffID: "1", Subject: " ", Content: "hello"})
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	inquiry, err := f.inbox.SendInquiry(ctx, parentActor, InquiryInput{StaffID: "1", Subject: "Homework", Content: "Question about page 4"})
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryUnread, inquiry.Status)
	assert.Equal(t, "p@home.sa", inquiry.ParentEmail)

	read, err := f.inbox.MarkRead(ctx, teacherActor, inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryRead, read.Status)

	_, err = f.inbox.Reply(ctx, teacherActor, inquiry.ID, "  ")
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	replied, err := f.inbox.Reply(ctx, teacherActor, inquiry.ID, "See you tomorrow")
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryReplied, replied.Status)
	assert.Equal(t, "See you tomorrow", replied.Reply)

	again, err := f.inbox.MarkRead(ctx, teacherActor, inquiry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryReplied, again.Status)

	inbox, err := f.inbox.Inbox(ctx, teacherActor)
	require.NoError(t, err)
	require.Len(t, inbox.Emails, 1)
	assert.Equal(t, *replied, inbox.Emails[0])
}

func TestInboxForUnknownTeacherIsEmpty(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, err := f.inbox.SendInquiry(ctx, parentActor, InquiryInput{StaffID: "1", Subject: "s", Content: "c"})
	require.NoError(t, err)

	stranger := domain.Session{Role: domain.SessionRoleTeacher, Email: "stranger@x.com"}
	inbox, err := f.inbox.Inbox(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, inbox.VoiceRooms)
	assert.Empty(t, inbox.Emails)

	_, err = f.inbox.Inbox(ctx, parentActor)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}
