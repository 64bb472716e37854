package history

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geminiflow/moa-tui/client"
	"github.com/geminiflow/moa-tui/transcript"
)

func sampleConversation(title string, updated time.Time) Conversation {
	return Conversation{
		ID:        fmt.Sprintf("conv-%d", updated.UnixNano()),
		Title:     title,
		CreatedAt: updated,
		UpdatedAt: updated,
		Entries: []Entry{
			{Sender: "user", Content: title, Time: updated},
			{Sender: "agent", Content: "ok", Time: updated},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir(), 10)
	conv := sampleConversation("deploy service-a", time.Now().UTC())
	require.NoError(t, store.Save(conv))

	got, err := store.Load(conv.ID)
	require.NoError(t, err)
	assert.Equal(t, conv.Title, got.Title)
	require.Len(t, got.Entries, 2)
	assert.Equal(t, "user", got.Entries[0].Sender)
}

func TestListNewestFirst(t *testing.T) {
	store := NewStore(t.TempDir(), 10)
	base := time.Now().UTC()
	require.NoError(t, store.Save(sampleConversation("oldest", base.Add(-2*time.Hour))))
	require.NoError(t, store.Save(sampleConversation("middle", base.Add(-1*time.Hour))))
	require.NoError(t, store.Save(sampleConversation("newest", base)))

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].Title)
	assert.Equal(t, "oldest", list[2].Title)
	assert.Equal(t, 1, list[0].Turns)
}

func TestListEmptyDir(t *testing.T) {
	store := NewStore(t.TempDir()+"/nonexistent", 10)
	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPruneKeepsNewest(t *testing.T) {
	store := NewStore(t.TempDir(), 2)
	base := time.Now().UTC()
	for i := 0; i < 4; i++ {
		conv := sampleConversation(fmt.Sprintf("conv %d", i), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Save(conv))
	}

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "conv 3", list[0].Title)
	assert.Equal(t, "conv 2", list[1].Title)
}

func TestDisabledStoreSavesNothing(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 0)
	assert.False(t, store.Enabled())
	require.NoError(t, store.Save(sampleConversation("x", time.Now())))

	list, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestFromTranscript(t *testing.T) {
	ts := transcript.New()
	ts.Begin("check costs for July")
	ts.Apply(client.Event{Kind: client.EventResponse, Text: "Total spend: $412."})
	ts.End()

	conv := FromTranscript(ts)
	assert.NotEmpty(t, conv.ID)
	assert.Equal(t, "check costs for July", conv.Title)
	require.Len(t, conv.Entries, 2)
	assert.Equal(t, "user", conv.Entries[0].Sender)
	assert.Equal(t, "agent", conv.Entries[1].Sender)
	assert.Equal(t, "Total spend: $412.", conv.Entries[1].Content)
}

func TestFromTranscriptTitleTruncated(t *testing.T) {
	ts := transcript.New()
	long := "this is a very long first question that keeps going well past the title limit for listings"
	ts.Begin(long)

	conv := FromTranscript(ts)
	assert.Less(t, len([]rune(conv.Title)), len([]rune(long)))
	assert.True(t, len([]rune(conv.Title)) <= titleLimit)
}
