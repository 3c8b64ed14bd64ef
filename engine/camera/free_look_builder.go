package camera

// FreeLookOption is a functional option for configuring a FreeLookController.
type FreeLookOption func(*freeLookControllerImpl)

// WithSpeed sets the fixed per-tick displacement along each axis.
//
// Parameters:
//   - speed: world units per tick (Toba uses 50, Mandailing 0.5)
//
// Returns:
//   - FreeLookOption: functional option to set the speed
func WithSpeed(speed float32) FreeLookOption {
	return func(c *freeLookControllerImpl) {
		c.speed = speed
	}
}

// WithConvention selects the longitudinal sign convention.
//
// Parameters:
//   - convention: ConventionReference (default) or ConventionNatural
//
// Returns:
//   - FreeLookOption: functional option to set the convention
func WithConvention(convention Convention) FreeLookOption {
	return func(c *freeLookControllerImpl) {
		c.convention = convention
	}
}

// WithClearOnFocusLoss controls whether a FocusLostCommand releases every held key.
// Disabling it reproduces the stuck-key behavior of the monument pages.
//
// Parameters:
//   - clear: true to release all keys on focus loss (default)
//
// Returns:
//   - FreeLookOption: functional option to set focus-loss handling
func WithClearOnFocusLoss(clear bool) FreeLookOption {
	return func(c *freeLookControllerImpl) {
		c.clearOnFocusLoss = clear
	}
}
