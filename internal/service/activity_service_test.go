package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/school-portal/internal/config"
	"github.com/spec-kit/school-portal/internal/domain"
	"github.com/spec-kit/school-portal/internal/events"
)

func TestActivityFeedIsBoundedNewestFirst(t *testing.T) {
	ctx := context.Background()
	dispatcher := events.NewInMemoryDispatcher(nil)
	feed := NewActivityService(3)
	feed.RegisterHandlers(dispatcher)

	for i := 0; i < 5; i++ {
		require.NoError(t, dispatcher.Publish(ctx, events.Event{
			Type:      events.EventStaffRoleChanged,
			SubjectID: fmt.Sprint(i),
			Actor:     events.Actor{Role: domain.SessionRoleAdmin, Name: "admin"},
			Payload:   events.StaffPayload{Name: fmt.Sprintf("staff-%d", i), OldRole: domain.StaffRoleTeacher, NewRole: domain.StaffRolePrincipal},
		}))
	}

	entries := feed.Recent(0)
	require.Len(t, entries, 3)
	assert.Equal(t, "staff-4", entries[0].Subject)
	assert.Equal(t, "staff-2", entries[2].Subject)
	assert.Equal(t, "teacher -> principal", entries[0].Detail)
	assert.Equal(t, "admin", entries[0].Actor)
	assert.False(t, entries[0].At.IsZero())

	assert.Len(t, feed.Recent(2), 2)
}

func TestActivityDefaultSize(t *testing.T) {
	assert.Equal(t, defaultFeedSize, NewActivityService(0).size)
}

type recordingMailer struct {
	sent []MailMessage
}

func (m *recordingMailer) Send(_ context.Context, msg MailMessage) error {
	m.sent = append(m.sent, msg)
	return nil
}

func TestNotificationStubsLogConfiguredChannels(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zapcore.DebugLevel)
	dispatcher := events.NewInMemoryDispatcher(nil)
	notifier := NewNotificationService(dispatcher, zap.New(core), config.NotificationConfig{
		EmailFrom:  "noreply@school.edu.sa",
		WebhookURL: "http://hooks.local/portal",
	}, nil)
	notifier.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		Type:      events.EventStaffApproved,
		SubjectID: "7",
		Payload:   events.StaffPayload{Email: "huda@school.edu.sa"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{Type: events.EventInquirySent, SubjectID: "q1"}))

	assert.Equal(t, 1, logs.FilterMessage("sendEmailNotificationStub").Len())
	assert.Equal(t, 1, logs.FilterMessage("sendWebhookNotificationStub").Len())
}

func TestNotificationMailerReceivesDecisionsAndReplies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	mailer := &recordingMailer{}
	NewNotificationService(f.dispatcher, nil, config.NotificationConfig{EmailFrom: "noreply@school.edu.sa"}, mailer).RegisterHandlers()

	f.seed(t, member("7", domain.StaffRoleTeacher, domain.StaffStatusPending))
	_, err := f.directory.Reject(ctx, adminActor, "7", always(true))
	require.NoError(t, err)

	inquiry, err := f.inbox.SendInquiry(ctx, parentActor, InquiryInput{StaffID: "7", Subject: "s", Content: "c"})
	assert.Nil(t, inquiry)
	assert.Error(t, err)

	f.seed(t, member("8", domain.StaffRoleTeacher, domain.StaffStatusActive))
	inquiry, err = f.inbox.SendInquiry(ctx, parentActor, InquiryInput{StaffID: "8", Subject: "s", Content: "c"})
	require.NoError(t, err)
	teacher := domain.Session{Role: domain.SessionRoleTeacher, Email: "8@school.edu.sa"}
	_, err = f.inbox.Reply(ctx, teacher, inquiry.ID, "done")
	require.NoError(t, err)

	require.Len(t, mailer.sent, 2)
	assert.Equal(t, "7@school.edu.sa", mailer.sent[0].To)
	assert.Contains(t, mailer.sent[0].Subject, "declined")
	assert.Equal(t, "p@home.sa", mailer.sent[1].To)
}

func TestPreferencesTheme(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	prefs := NewPreferencesService(f.prefsRepo)

	theme, err := prefs.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, theme)

	_, err = prefs.SetTheme(ctx, domain.Theme("sepia"))
	assert.Error(t, err)

	_, err = prefs.SetTheme(ctx, domain.ThemeDark)
	require.NoError(t, err)
	theme, err = prefs.Theme(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeDark, theme)

	parent, err := prefs.RememberedParent(ctx)
	require.NoError(t, err)
	assert.Nil(t, parent)
	require.NoError(t, prefs.ForgetParent(ctx))
}
