package loader

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithAssetRoot is an option builder that sets the directory model paths are resolved against.
//
// Parameters:
//   - root: the asset directory
//
// Returns:
//   - LoaderBuilderOption: a function that applies the asset root option to a loader
func WithAssetRoot(root string) LoaderBuilderOption {
	return func(l *loader) {
		l.root = root
	}
}

// WithWorkers is an option builder that sets how many loads may run at once.
//
// Parameters:
//   - n: the maximum number of concurrent loads, ignored when below 1
//
// Returns:
//   - LoaderBuilderOption: a function that applies the worker option to a loader
func WithWorkers(n int) LoaderBuilderOption {
	return func(l *loader) {
		if n > 0 {
			l.workers = n
		}
	}
}
