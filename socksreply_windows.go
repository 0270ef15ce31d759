//go:build windows

package main

import "golang.org/x/sys/windows"

// On Windows there is no distinct POSIX errno set; the WinSock numbers in
// socksreply.go's osErrorNumberToReply already cover this platform, so the
// "POSIX equivalents" collapse onto the same WSA constants spec.md's table
// lists. Kept as a separate build-tag file, mirroring the teacher's
// sockopt_linux.go/sockopt_other.go split, so the primary (POSIX) build in
// socksreply_unix.go never imports golang.org/x/sys/windows.
const (
	posixENETUNREACH  = int(windows.WSAENETUNREACH)
	posixEHOSTUNREACH = int(windows.WSAEHOSTUNREACH)
	posixECONNREFUSED = int(windows.WSAECONNREFUSED)
	posixETIMEDOUT    = int(windows.WSAETIMEDOUT)
)
