package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultCacheTTL = 30 * time.Second

// captureWriter keeps a copy of the body while forwarding it to the client.
type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

func (cw *captureWriter) WriteString(s string) (int, error) {
	cw.buf.WriteString(s)
	return cw.ResponseWriter.WriteString(s)
}

func cacheKey(prefix string, c *gin.Context) string {
	tail := strings.Join([]string{"route", c.FullPath(), "path", c.Request.URL.Path, "q", c.Request.URL.RawQuery}, ":")
	sum := sha1.Sum([]byte(tail))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// encodePayload packs [4 bytes status][4 bytes header length][header JSON][body].
func encodePayload(status int, header http.Header, body []byte) ([]byte, error) {
	hdrJSON, err := json.Marshal(header)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 8+len(hdrJSON)+len(body))
	binary.BigEndian.PutUint32(out[0:4], uint32(status))
	binary.BigEndian.PutUint32(out[4:8], uint32(len(hdrJSON)))
	copy(out[8:], hdrJSON)
	copy(out[8+len(hdrJSON):], body)
	return out, nil
}

func decodePayload(bs []byte) (status int, header http.Header, body []byte, ok bool) {
	if len(bs) < 8 {
		return 0, nil, nil, false
	}
	status = int(binary.BigEndian.Uint32(bs[0:4]))
	hlen := int(binary.BigEndian.Uint32(bs[4:8]))
	if hlen < 0 || 8+hlen > len(bs) {
		return 0, nil, nil, false
	}
	header = make(http.Header)
	if hlen > 0 {
		if err := json.Unmarshal(bs[8:8+hlen], &header); err != nil {
			return 0, nil, nil, false
		}
	}
	return status, header, bs[8+hlen:], true
}

// CacheMiddleware serves GET responses from Redis. A nil client disables it.
func CacheMiddleware(rdb *redis.Client, prefix string, ttl time.Duration) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cacheKey(prefix, c)

		if bs, err := rdb.Get(ctx, key).Bytes(); err == nil {
			if status, hdr, body, ok := decodePayload(bs); ok {
				for k, vals := range hdr {
					if strings.EqualFold(k, "Content-Length") {
						continue
					}
					for _, v := range vals {
						c.Writer.Header().Add(k, v)
					}
				}
				c.Writer.Header().Set("X-Cache", "HIT")
				c.Status(status)
				_, _ = c.Writer.Write(body)
				c.Abort()
				return
			}
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() != http.StatusOK {
			return
		}
		hdr := c.Writer.Header().Clone()
		hdr.Del("X-Cache")
		payload, err := encodePayload(cw.Status(), hdr, cw.buf.Bytes())
		if err != nil {
			return
		}
		if err := rdb.SetEx(context.WithoutCancel(ctx), key, payload, ttl).Err(); err != nil {
			zap.L().Warn("cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// InvalidateCache drops every cached entry under prefix.
func InvalidateCache(ctx context.Context, rdb *redis.Client, prefix string) error {
	if rdb == nil {
		return nil
	}
	iter := rdb.Scan(ctx, 0, prefix+":*", 100).Iterator()
	for iter.Next(ctx) {
		if err := rdb.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
