// Package fs implements [storee.BlobStore] on the local filesystem. Media
// bytes live under a root directory keyed by "{owner}/{file}", and signed
// URLs are HMAC-authenticated links served back through the HTTP layer.
package fs

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	iofs "io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/storee/storee"
)

// Interface compliance check.
var _ storee.BlobStore = (*BlobStore)(nil)

// BlobStore stores blobs as files under a root directory.
type BlobStore struct {
	root    string
	baseURL string
	secret  []byte
	now     func() time.Time
}

// Option configures a [BlobStore].
type Option func(*BlobStore)

// WithBaseURL sets the public base URL signed URLs are built on.
func WithBaseURL(u string) Option {
	return func(s *BlobStore) { s.baseURL = strings.TrimSuffix(u, "/") }
}

// WithClock overrides the clock used for URL expiry.
func WithClock(now func() time.Time) Option {
	return func(s *BlobStore) { s.now = now }
}

// New creates a blob store rooted at dir. The secret signs URLs; two stores
// sharing a secret accept each other's links.
func New(dir string, secret []byte, opts ...Option) *BlobStore {
	s := &BlobStore{
		root:    dir,
		baseURL: "http://localhost:8080",
		secret:  secret,
		now:     time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// validateKey rejects keys that would escape the root directory.
func validateKey(key string) error {
	if key == "" || path.IsAbs(key) || key != path.Clean(key) || strings.HasPrefix(key, "..") {
		return fmt.Errorf("invalid blob key %q: %w", key, storee.ErrValidation)
	}
	return nil
}

func (s *BlobStore) keyPath(key string) string {
	return filepath.Join(s.root, filepath.FromSlash(key))
}

// Put writes the blob atomically: a temp file in the same directory is
// renamed over the final path once fully written.
func (s *BlobStore) Put(_ context.Context, key string, r io.Reader) error {
	if err := validateKey(key); err != nil {
		return err
	}
	dst := s.keyPath(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dst), ".blob-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name()) // best-effort cleanup
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

func (s *BlobStore) Get(_ context.Context, key string) (io.ReadCloser, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	f, err := os.Open(s.keyPath(key))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("blob %s: %w", key, storee.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("open blob: %w", err)
	}
	return f, nil
}

func (s *BlobStore) Delete(_ context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	err := os.Remove(s.keyPath(key))
	if os.IsNotExist(err) {
		return fmt.Errorf("blob %s: %w", key, storee.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete blob: %w", err)
	}
	return nil
}

// List returns the keys under prefix matching pattern. Patterns support **
// for recursive matching. A prefix with no stored blobs lists empty rather
// than erroring.
func (s *BlobStore) List(_ context.Context, prefix, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "**"
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, storee.ErrValidation)
	}
	dir := s.root
	if prefix != "" {
		if err := validateKey(prefix); err != nil {
			return nil, err
		}
		dir = s.keyPath(prefix)
	}

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("access prefix: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("prefix %q is not a directory: %w", prefix, storee.ErrValidation)
	}

	var keys []string
	err = doublestar.GlobWalk(os.DirFS(dir), pattern, func(p string, d iofs.DirEntry) error {
		if d.IsDir() || strings.HasPrefix(path.Base(p), ".blob-") {
			return nil
		}
		if prefix != "" {
			p = path.Join(prefix, p)
		}
		keys = append(keys, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("match pattern: %w", err)
	}
	return keys, nil
}

// SignedURL returns a time-limited link for the blob. The signature covers
// the key and expiry so neither can be altered.
func (s *BlobStore) SignedURL(_ context.Context, key string, expiry time.Duration) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	if _, err := os.Stat(s.keyPath(key)); os.IsNotExist(err) {
		return "", fmt.Errorf("blob %s: %w", key, storee.ErrNotFound)
	}

	expires := s.now().Add(expiry).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("sig", sign(s.secret, key, expires))
	return fmt.Sprintf("%s/media/%s?%s", s.baseURL, key, q.Encode()), nil
}

// VerifySignature checks a signed URL's signature and expiry for key.
func (s *BlobStore) VerifySignature(key, expiresStr, sig string) bool {
	expires, err := strconv.ParseInt(expiresStr, 10, 64)
	if err != nil {
		return false
	}
	if s.now().Unix() > expires {
		return false
	}
	return hmac.Equal([]byte(sign(s.secret, key, expires)), []byte(sig))
}

func sign(secret []byte, key string, expires int64) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%s|%d", key, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
