package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"calorie-tracker-bot/internal/features/diary/models"
	"calorie-tracker-bot/internal/features/diary/service"
	"calorie-tracker-bot/internal/platform/telegram"
)

type fakeGateway struct {
	sent  chan string
	image []byte
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{sent: make(chan string, 8), image: []byte("jpeg-bytes")}
}

func (f *fakeGateway) SendMessage(_ context.Context, _ int64, text string) error {
	f.sent <- text
	return nil
}

func (f *fakeGateway) GetFile(_ context.Context, fileID string) (*telegram.File, error) {
	return &telegram.File{FileID: fileID, FilePath: "photos/" + fileID + ".jpg"}, nil
}

func (f *fakeGateway) DownloadFile(_ context.Context, _ string) ([]byte, error) {
	return f.image, nil
}

func (f *fakeGateway) lastMessage(t *testing.T) string {
	t.Helper()
	select {
	case text := <-f.sent:
		return text
	case <-time.After(time.Second):
		t.Fatal("no message sent")
		return ""
	}
}

type fakeDiary struct {
	estimate    *models.PendingCandidate
	estimateErr error
	commit      *service.CommitResult
	commitErr   error

	manualName     string
	manualCalories string
	goalText       string
	hint           string
	resetCalled    bool
}

func (f *fakeDiary) RequestEstimate(_ context.Context, _ int64, _ []byte, hint string) (*models.PendingCandidate, error) {
	f.hint = hint
	return f.estimate, f.estimateErr
}

func (f *fakeDiary) ConfirmPending(_ context.Context, _ int64) (*service.CommitResult, error) {
	return f.commit, f.commitErr
}

func (f *fakeDiary) AddManualMeal(_ context.Context, _ int64, name, caloriesText string) (*service.CommitResult, error) {
	f.manualName = name
	f.manualCalories = caloriesText
	return f.commit, f.commitErr
}

func (f *fakeDiary) DailyStats(_ context.Context, _ int64) (*models.DailyStats, error) {
	return &models.DailyStats{Goal: 2000, Consumed: 95, Remaining: 1905,
		Meals: []models.MealEntry{{Name: "Apple", Calories: 95}}}, nil
}

func (f *fakeDiary) ResetToday(_ context.Context, _ int64) error {
	f.resetCalled = true
	return nil
}

func (f *fakeDiary) SetGoal(_ context.Context, _ int64, caloriesText string) (int, error) {
	f.goalText = caloriesText
	return 1800, nil
}

func textUpdate(text string) telegram.Update {
	return telegram.Update{Message: &telegram.Message{
		From: &telegram.User{ID: 7},
		Chat: telegram.Chat{ID: 7},
		Text: text,
	}}
}

func TestDispatchStats(t *testing.T) {
	gateway := newFakeGateway()
	d := NewDispatcher(gateway, &fakeDiary{})

	d.Dispatch(context.Background(), textUpdate("/stats"))

	text := gateway.lastMessage(t)
	assert.Contains(t, text, "Consumed: 95 kcal")
	assert.Contains(t, text, "Apple — 95 kcal")
}

func TestDispatchEatParsesMultiWordName(t *testing.T) {
	gateway := newFakeGateway()
	diary := &fakeDiary{commit: &service.CommitResult{Name: "Greek salad", Calories: 180,
		Stats: models.DailyStats{Consumed: 180, Remaining: 1820}}}
	d := NewDispatcher(gateway, diary)

	d.Dispatch(context.Background(), textUpdate("/eat Greek salad 180"))

	assert.Equal(t, "Greek salad", diary.manualName)
	assert.Equal(t, "180", diary.manualCalories)
	assert.Contains(t, gateway.lastMessage(t), "Greek salad")
}

func TestDispatchEatUsage(t *testing.T) {
	gateway := newFakeGateway()
	d := NewDispatcher(gateway, &fakeDiary{})

	d.Dispatch(context.Background(), textUpdate("/eat"))

	assert.Equal(t, msgEatUsage, gateway.lastMessage(t))
}

func TestDispatchDoneNoPending(t *testing.T) {
	gateway := newFakeGateway()
	d := NewDispatcher(gateway, &fakeDiary{commitErr: service.ErrNoPending})

	d.Dispatch(context.Background(), textUpdate("/done"))

	assert.Equal(t, msgNoPending, gateway.lastMessage(t))
}

func TestDispatchSetGoal(t *testing.T) {
	gateway := newFakeGateway()
	diary := &fakeDiary{}
	d := NewDispatcher(gateway, diary)

	d.Dispatch(context.Background(), textUpdate("/setgoal 1800"))

	assert.Equal(t, "1800", diary.goalText)
	assert.Contains(t, gateway.lastMessage(t), "1800")
}

func TestDispatchReset(t *testing.T) {
	gateway := newFakeGateway()
	diary := &fakeDiary{}
	d := NewDispatcher(gateway, diary)

	d.Dispatch(context.Background(), textUpdate("/reset"))

	assert.True(t, diary.resetCalled)
	assert.Equal(t, msgReset, gateway.lastMessage(t))
}

func TestDispatchPhotoUsesLargestSizeAndCaptionHint(t *testing.T) {
	gateway := newFakeGateway()
	diary := &fakeDiary{estimate: &models.PendingCandidate{Name: "Borscht", Calories: 250}}
	d := NewDispatcher(gateway, diary)

	d.Dispatch(context.Background(), telegram.Update{Message: &telegram.Message{
		From:    &telegram.User{ID: 7},
		Chat:    telegram.Chat{ID: 7},
		Caption: "/calc with sour cream",
		Photo:   []telegram.PhotoSize{{FileID: "small"}, {FileID: "big"}},
	}})

	text := gateway.lastMessage(t)
	require.Contains(t, text, "Borscht")
	assert.Contains(t, text, "/done")
	assert.Equal(t, "with sour cream", diary.hint)
}

func TestDispatchIgnoresNonCommands(t *testing.T) {
	gateway := newFakeGateway()
	d := NewDispatcher(gateway, &fakeDiary{})

	d.Dispatch(context.Background(), textUpdate("hello there"))
	d.Dispatch(context.Background(), telegram.Update{})

	select {
	case text := <-gateway.sent:
		t.Fatalf("unexpected message: %s", text)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestExtractHint(t *testing.T) {
	assert.Equal(t, "", extractHint(""))
	assert.Equal(t, "", extractHint("/calc"))
	assert.Equal(t, "coffee with milk", extractHint("/calc coffee with milk"))
	assert.Equal(t, "coffee with milk", extractHint("  coffee with milk "))
}
