package ping_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/kazakovdmitriy/go-eventmanager/internal/handler/ping"
	"github.com/kazakovdmitriy/go-eventmanager/internal/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestPingHandler_GetPingDB(t *testing.T) {
	tests := []struct {
		name    string
		pingErr error
		want    int
	}{
		{name: "healthy", want: http.StatusOK},
		{name: "unreachable", pingErr: errors.New("connection refused"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			store := mocks.NewMockStore(ctrl)
			store.EXPECT().Ping(gomock.Any()).Return(tt.pingErr)

			handler := ping.NewPingHandler(zaptest.NewLogger(t), store)
			w := httptest.NewRecorder()
			handler.GetPingDB(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestPingHandler_NoStorage(t *testing.T) {
	handler := ping.NewPingHandler(zaptest.NewLogger(t), nil)
	w := httptest.NewRecorder()
	handler.GetPingDB(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
