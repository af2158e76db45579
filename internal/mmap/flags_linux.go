//go:build linux

package mmap

import "golang.org/x/sys/unix"

// MAP_NORESERVE skips swap accounting so huge reservations succeed under strict overcommit.
const reserveFlags = unix.MAP_PRIVATE | unix.MAP_ANON | unix.MAP_NORESERVE
