//go:build darwin

package mmap

import "golang.org/x/sys/unix"

const reserveFlags = unix.MAP_PRIVATE | unix.MAP_ANON
