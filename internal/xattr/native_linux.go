package xattr

import "golang.org/x/sys/unix"

// errNoAttr is returned by removexattr when the attribute vanished after listing.
const errNoAttr = unix.ENODATA
