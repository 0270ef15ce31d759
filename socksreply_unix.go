//go:build !windows

package main

import "syscall"

// POSIX errno values used by osErrorNumberToReply, named per spec.md §3's
// required "POSIX equivalents" of the WinSock error table.
const (
	posixENETUNREACH  = int(syscall.ENETUNREACH)
	posixEHOSTUNREACH = int(syscall.EHOSTUNREACH)
	posixECONNREFUSED = int(syscall.ECONNREFUSED)
	posixETIMEDOUT    = int(syscall.ETIMEDOUT)
)
