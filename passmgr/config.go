package passmgr

import "io"

// Config controls which passes run and when the Manager dumps the
// module's GIL text around a pass, the knobs cmd/gilinspect exposes as
// urfave/cli flags (--disable-pass, --print-before, --print-after,
// --print-before-each, --print-after-each).
type Config struct {
	DisablePass map[string]bool
	PrintBefore map[string]bool
	PrintAfter  map[string]bool

	PrintBeforeEach bool
	PrintAfterEach  bool

	// Writer receives printed GIL text. Defaults to io.Discard when nil
	// so a Manager built without a Config never panics on an unset
	// field.
	Writer io.Writer
}

func (c Config) shouldPrintBefore(name string) bool {
	return c.PrintBeforeEach || c.PrintBefore[name]
}

func (c Config) shouldPrintAfter(name string) bool {
	return c.PrintAfterEach || c.PrintAfter[name]
}
