package persist

// Options selects where the platform store writes.
type Options struct {
	// RcFile overrides the rc-file path.
	RcFile string
	// Shell is the value of $SHELL used to pick the rc-file.
	Shell string
}
