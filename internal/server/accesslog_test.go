package server

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		status int
		want   Bucket
	}{
		{200, BucketSuccess},
		{304, BucketNotModified},
		{404, BucketNotFound},
		{206, BucketOther},
		{301, BucketOther},
		{403, BucketOther},
		{500, BucketOther},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Classify(tc.status), "status %d", tc.status)
	}
}

func TestBucketColors(t *testing.T) {
	assert.Equal(t, colorGreen, BucketSuccess.Color())
	assert.Equal(t, colorBlue, BucketNotModified.Color())
	assert.Equal(t, colorYellow, BucketNotFound.Color())
	assert.Equal(t, colorRed, BucketOther.Color())
	assert.Equal(t, "not-found", BucketNotFound.String())
}

func TestFormatAccessLine(t *testing.T) {
	req := httptest.NewRequest("GET", "/data/200/rows.csv?v=304", nil)
	param := gin.LogFormatterParams{
		Request:    req,
		TimeStamp:  time.Date(2026, time.October, 16, 9, 5, 7, 0, time.UTC),
		StatusCode: 404,
		Method:     "GET",
		Path:       "/data/200/rows.csv?v=304",
		BodySize:   19,
	}

	plain := FormatAccessLine(param, false)
	assert.Equal(t, "[16/Oct/2026 09:05:07] \"GET /data/200/rows.csv?v=304 HTTP/1.1\" 404 19\n", plain)

	// パスに200や304が含まれていてもステータスで色を決める
	colored := FormatAccessLine(param, true)
	assert.Equal(t, colorYellow+plain[:len(plain)-1]+colorReset+"\n", colored)
}

func TestFormatAccessLineWithoutBody(t *testing.T) {
	param := gin.LogFormatterParams{
		TimeStamp:  time.Date(2026, time.October, 16, 9, 5, 7, 0, time.UTC),
		StatusCode: 500,
		Method:     "POST",
		Path:       "/upload",
		BodySize:   -1,
	}

	assert.Equal(t, "[16/Oct/2026 09:05:07] \"POST /upload HTTP/1.1\" 500 -\n", FormatAccessLine(param, false))
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, ColorEnabled("always", nil))
	assert.False(t, ColorEnabled("never", nil))
	assert.False(t, ColorEnabled("auto", nil))
}
