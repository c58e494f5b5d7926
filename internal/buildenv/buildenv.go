package buildenv

// Env is the environment a bundle is built for.
type Env string

const (
	Development Env = "development"
	Test        Env = "test"
	Production  Env = "production"
)

// Resolve maps the provided BUILD_ENV value to the environment used for the build.
//
// From the build's point of view test and production are the same thing, so test
// is coerced to production. Empty and unrecognised values fall back to development.
func Resolve(provided string) Env {
	switch Env(provided) {
	case Production, Test:
		return Production
	default:
		return Development
	}
}

// DevMode reports whether development only settings apply.
func (e Env) DevMode() bool {
	return e == Development
}

func (e Env) String() string {
	return string(e)
}
