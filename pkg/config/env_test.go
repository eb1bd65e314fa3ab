package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("TEST_STRING", "  value  ")
	assert.Equal(t, "value", GetEnvString("TEST_STRING", "default"))

	t.Setenv("TEST_STRING", "")
	assert.Equal(t, "default", GetEnvString("TEST_STRING", "default"))
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_LIST", " 10.0.0.0/8, ,192.168.1.1 ")
	assert.Equal(t, []string{"10.0.0.0/8", "192.168.1.1"}, GetEnvList("TEST_LIST", nil))

	t.Setenv("TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvList("TEST_LIST", []string{"x"}))

	t.Setenv("TEST_LIST", "")
	assert.Nil(t, GetEnvList("TEST_LIST", nil))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "42", want: 42},
		{name: "negative", value: "-3", want: -3},
		{name: "unset", value: "", want: 7},
		{name: "invalid", value: "forty", want: 7},
		{name: "trailing garbage", value: "12abc", want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("TEST_INT", 7))
		})
	}
}

func TestGetEnvInt64(t *testing.T) {
	t.Setenv("TEST_INT64", "10485760")
	assert.Equal(t, int64(10485760), GetEnvInt64("TEST_INT64", 1))

	t.Setenv("TEST_INT64", "big")
	assert.Equal(t, int64(1), GetEnvInt64("TEST_INT64", 1))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "2.5")
	assert.InDelta(t, 2.5, GetEnvFloat("TEST_FLOAT", 1), 1e-9)

	t.Setenv("TEST_FLOAT", "fast")
	assert.InDelta(t, 1.0, GetEnvFloat("TEST_FLOAT", 1), 1e-9)
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "true", want: true},
		{value: "1", want: true},
		{value: "FALSE", want: false},
		{value: "0", want: false},
		{value: "yes", want: true}, // invalid, default
		{value: "", want: true},
	}
	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		assert.Equal(t, tt.want, GetEnvBool("TEST_BOOL", true), "value %q", tt.value)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "1m30s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "90")
	assert.Equal(t, time.Second, GetEnvDuration("TEST_DURATION", time.Second))
}

func TestValidatePositiveDuration(t *testing.T) {
	assert.NoError(t, ValidatePositiveDuration(time.Millisecond))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.Error(t, ValidatePositiveDuration(-time.Second))
}

func TestValidateHTTPURL(t *testing.T) {
	assert.NoError(t, ValidateHTTPURL("https://get-rss.nekoqwq.space"))
	assert.NoError(t, ValidateHTTPURL("http://127.0.0.1:8081/base"))
	assert.Error(t, ValidateHTTPURL("ftp://example.com"))
	assert.Error(t, ValidateHTTPURL("/relative"))
	assert.Error(t, ValidateHTTPURL("http://"))
	assert.Error(t, ValidateHTTPURL("://bad"))
}
