package openai

// NewWithAPI builds a Client around a fake API. Exported for testing.
func NewWithAPI(a api, opts ...Option) *Client {
	c := New("test-key", opts...)
	c.api = a
	return c
}
