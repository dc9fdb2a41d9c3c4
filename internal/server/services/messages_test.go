package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tgproxy/internal/common"
	"github.com/dmitrijs2005/tgproxy/internal/server/models"
	"github.com/dmitrijs2005/tgproxy/internal/server/remote"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialogs_Projection(t *testing.T) {
	f := newFixture(true)
	f.seed("s", "blob")
	f.client.authorized = true
	f.client.dialogs = []remote.Dialog{
		{ID: "10", Name: "Ann Lee", IsUser: true, UnreadCount: 2, Message: &remote.Message{Text: "hi"}, Date: 100},
		{ID: "-20", Title: "Family", IsGroup: true},
		{ID: "-1000000000030"},
	}

	got, err := f.messages.Dialogs(context.Background(), "s")
	require.NoError(t, err)

	want := []models.Dialog{
		{ID: "10", Name: "Ann Lee", IsUser: true, UnreadCount: 2, LastMessage: "hi", Date: 100},
		{ID: "-20", Name: "Family", IsGroup: true},
		{ID: "-1000000000030", Name: "Unknown"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("dialogs mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 50, f.client.gotLimit)
}

func TestDialogs_NotAuthorized(t *testing.T) {
	f := newFixture(true)
	f.seed("s", "blob")

	_, err := f.messages.Dialogs(context.Background(), "s")
	require.ErrorIs(t, err, common.ErrorUnauthorized)
	assert.Equal(t, 0, f.client.gotLimit, "dialogs not fetched")
}

func TestDialogs_SessionNotFound(t *testing.T) {
	f := newFixture(true)

	_, err := f.messages.Dialogs(context.Background(), "absent")
	require.ErrorIs(t, err, common.ErrorSessionNotFound)
	assert.Equal(t, 0, f.connector.calls)
}

func TestDialogs_MissingSession(t *testing.T) {
	f := newFixture(true)

	_, err := f.messages.Dialogs(context.Background(), "")
	require.ErrorIs(t, err, common.ErrorValidation)
}

func TestMessages_DropsEntriesWithoutText(t *testing.T) {
	f := newFixture(true)
	f.seed("s", "blob")
	f.client.messages = []remote.Message{
		{ID: 3, Text: "latest", Out: true, Date: 30, From: remote.Peer{UserID: 10}},
		{ID: 2, Date: 20},
		{ID: 1, Text: "post", Date: 10, From: remote.Peer{ChannelID: 30}},
		{ID: 0, Text: "anon", Date: 5, From: remote.Peer{ChatID: 7}},
	}

	got, err := f.messages.Messages(context.Background(), "s", "10", 50)
	require.NoError(t, err)

	want := []models.Message{
		{ID: 3, Text: "latest", Out: true, Date: 30, FromID: "10"},
		{ID: 1, Text: "post", Date: 10, FromID: "30"},
		{ID: 0, Text: "anon", Date: 5, FromID: ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "10", f.client.gotPeer)
	assert.Equal(t, 50, f.client.gotLimit)
}

func TestMessages_LimitBounds(t *testing.T) {
	f := newFixture(true)
	f.seed("s", "blob")

	for _, limit := range []int{0, -1, 101} {
		_, err := f.messages.Messages(context.Background(), "s", "10", limit)
		require.ErrorIs(t, err, common.ErrorValidation, "limit %d", limit)
	}
	assert.Equal(t, 0, f.connector.calls)

	_, err := f.messages.Messages(context.Background(), "s", "10", 100)
	require.NoError(t, err)
}

func TestMessages_MissingPeer(t *testing.T) {
	f := newFixture(true)

	_, err := f.messages.Messages(context.Background(), "s", "", 10)
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"peerId"}, verr.Fields)
}

func TestSend_Success(t *testing.T) {
	f := newFixture(true)
	f.seed("s", "blob")
	f.client.sent = &models.SentMessage{ID: 99, Date: 1700000000}

	got, err := f.messages.Send(context.Background(), "s", "@ann", "hello")
	require.NoError(t, err)
	assert.Equal(t, &models.SentMessage{ID: 99, Date: 1700000000}, got)
	assert.Equal(t, "@ann", f.client.gotPeer)
	assert.Equal(t, "hello", f.client.gotText)
	assert.Equal(t, 1, f.connector.calls)
}

func TestSend_Validation(t *testing.T) {
	f := newFixture(true)

	_, err := f.messages.Send(context.Background(), "s", "10", "")
	var verr *common.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"message"}, verr.Fields)
	assert.Equal(t, 0, f.connector.calls)
}

func TestSend_SessionNotFound(t *testing.T) {
	f := newFixture(true)

	_, err := f.messages.Send(context.Background(), "absent", "10", "hi")
	require.ErrorIs(t, err, common.ErrorSessionNotFound)
}

func TestMessagesAndSend_UnauthorizedBlob(t *testing.T) {
	revoked := &remote.Error{Code: 401, Type: "AUTH_KEY_UNREGISTERED"}
	f := newFixture(true)
	f.seed("s", "blob")
	f.client.messagesErr = revoked
	f.client.sendErr = revoked

	_, err := f.messages.Messages(context.Background(), "s", "10", 10)
	var rerr *remote.Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, 401, rerr.Code)

	_, err = f.messages.Send(context.Background(), "s", "10", "hi")
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, "AUTH_KEY_UNREGISTERED", rerr.Type)

	assert.Equal(t, 2, f.connector.calls, "one round trip each, no extra authorization check")
	assert.Equal(t, 0, f.store.sets)
}
