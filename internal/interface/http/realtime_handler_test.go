package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/swagatom/blog-api/internal/realtime"
)

// closeNotifyRecorder adds the http.CloseNotifier method gin's Stream
// requires; httptest.ResponseRecorder alone panics inside gin.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool { return r.closed }

func TestRealtimeCommentsStream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	b := realtime.NewBroadcaster(nil, "", nil)
	r := gin.New()
	r.GET("/api/realtime/comments", NewRealtimeHandler(b, nil).Comments)

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/realtime/comments", nil).WithContext(ctx)
	w := newCloseNotifyRecorder()

	served := make(chan struct{})
	go func() {
		defer close(served)
		r.ServeHTTP(w, req)
	}()

	// wait for the subscription before publishing
	require.Eventually(t, func() bool { return b.Subscribers() == 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, b.Publish(context.Background(), realtime.LikeEvent{CommentID: "comment-1", NumberOfLikes: 4}))

	// give the handler time to drain and write the event, then hang up like
	// a closing browser tab
	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not return after client disconnect")
	}

	body := w.Body.String()
	require.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	require.Contains(t, body, "event:commentLiked")
	require.Contains(t, body, `"commentId":"comment-1"`)
	require.Contains(t, body, `"numberOfLikes":4`)

	require.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
}
