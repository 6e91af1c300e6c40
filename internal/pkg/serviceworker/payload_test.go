package serviceworker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Payload
	}{
		{
			name: "full payload",
			data: []byte(`{"title":"Session ready","body":"Your photos are online","url":"/gallery/42"}`),
			want: Payload{Title: "Session ready", Body: "Your photos are online", URL: "/gallery/42"},
		},
		{
			name: "no data",
			data: nil,
			want: Payload{Title: DefaultTitle, URL: DefaultURL},
		},
		{
			name: "malformed json",
			data: []byte(`{"title":`),
			want: Payload{Title: DefaultTitle, URL: DefaultURL},
		},
		{
			name: "empty fields fall back individually",
			data: []byte(`{"title":"","body":"hello","url":""}`),
			want: Payload{Title: DefaultTitle, Body: "hello", URL: DefaultURL},
		},
		{
			name: "only url",
			data: []byte(`{"url":"/booking"}`),
			want: Payload{Title: DefaultTitle, URL: "/booking"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePayload(tt.data))
		})
	}
}

func TestPayloadOptions(t *testing.T) {
	opts := Payload{Title: "t", Body: "b", URL: "/x"}.Options()

	assert.Equal(t, "b", opts.Body)
	assert.Equal(t, IconPath, opts.Icon)
	assert.Equal(t, IconPath, opts.Badge)
	assert.Equal(t, "/x", opts.Data.URL)
}
