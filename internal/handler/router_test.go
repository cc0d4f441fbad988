package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kazakovdmitriy/go-eventmanager/internal/compress"
	"github.com/kazakovdmitriy/go-eventmanager/internal/events"
	"github.com/kazakovdmitriy/go-eventmanager/internal/model"
	"github.com/kazakovdmitriy/go-eventmanager/internal/sampler"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type counter struct {
	samples int
}

func (c *counter) OnSample(owner *sampler.Sampler, e model.SampleEvent) {
	c.samples++
}

func newTestRouter(t *testing.T) (http.Handler, *sampler.Sampler, chan struct{}) {
	log := zaptest.NewLogger(t)
	s, err := sampler.New("host-1", time.Hour, nil, log)
	require.NoError(t, err)

	shutdown := make(chan struct{})
	var active sync.WaitGroup
	router := SetupHandler(Deps{Sampler: s, RateLimit: 2}, &active, shutdown, log)
	return router, s, shutdown
}

func TestRouter_Sample(t *testing.T) {
	router, s, _ := newTestRouter(t)

	c := &counter{}
	require.NoError(t, s.RegisterOnSample(c, ""))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/sample", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, c.samples)

	var event model.SampleEvent
	require.NoError(t, json.NewDecoder(w.Body).Decode(&event))
	assert.Equal(t, int64(1), event.PollCount)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sample", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestRouter_EventsCompressed(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	req.Header.Set("Accept-Encoding", compress.Encoding)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, compress.Encoding, w.Header().Get("Content-Encoding"))

	gz, err := gzip.NewReader(w.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(gz)
	require.NoError(t, err)

	var infos []events.EventInfo
	require.NoError(t, json.Unmarshal(body, &infos))
	require.Len(t, infos, 2)
	assert.Equal(t, sampler.EventSample, infos[0].Name)
	assert.Equal(t, sampler.EventStop, infos[1].Name)
}

func TestRouter_NoDatabase(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/on_sample/recent", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRouter_ShuttingDown(t *testing.T) {
	router, _, shutdown := newTestRouter(t)
	close(shutdown)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
