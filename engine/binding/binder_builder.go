package binding

// BinderBuilderOption is a function that configures a binder during construction.
type BinderBuilderOption func(*binder)

// WithToken sets the substring a mesh name must contain to be bindable. Defaults to DefaultToken.
// An empty token is ignored.
//
// Parameters:
//   - token: the recognition substring
//
// Returns:
//   - BinderBuilderOption: a function that applies the token option to a binder
func WithToken(token string) BinderBuilderOption {
	return func(b *binder) {
		if token != "" {
			b.token = token
		}
	}
}
