package main

import (
	"errors"
	"syscall"
)

// socksReplyForError maps a dial error to a SOCKS5 reply code per spec.md
// §3/§7. The mapping is total: unmapped errors fall back to
// replyGeneralFailure. It checks syscall errno values first (mirroring the
// teacher's errors.Is(err, syscall.ECONNREFUSED) chain in proxy.go,
// extended to the full table spec.md requires), then falls back to the OS
// error number table for platforms where errno constants don't directly
// match (see socksreply_unix.go / socksreply_windows.go).
func socksReplyForError(err error) byte {
	if err == nil {
		return replySucceeded
	}

	switch {
	case errors.Is(err, syscall.ECONNREFUSED):
		return replyConnectionRefused
	case errors.Is(err, syscall.ENETUNREACH):
		return replyNetworkUnreachable
	case errors.Is(err, syscall.EHOSTUNREACH):
		return replyHostUnreachable
	case errors.Is(err, syscall.ETIMEDOUT):
		return replyTTLExpired
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if code, ok := osErrorNumberToReply(int(errno)); ok {
			return code
		}
	}

	return replyGeneralFailure
}

// osErrorNumberToReply maps a raw OS error number to a SOCKS5 reply code,
// per the table in spec.md §3 (the original source's WinSock numbers plus
// their POSIX equivalents). It is total in the sense required by spec.md:
// callers treat a false ok as "no mapping, use replyGeneralFailure".
func osErrorNumberToReply(errno int) (byte, bool) {
	switch errno {
	case 0:
		return replySucceeded, true

	// WinSock numbers from the original source's Helpers::get_socks_reply.
	case 10050, 10051: // WSAENETDOWN, WSAENETUNREACH
		return replyNetworkUnreachable, true
	case 10064, 11001, 10065: // WSAEHOSTDOWN, WSAHOST_NOT_FOUND, WSAEHOSTUNREACH
		return replyHostUnreachable, true
	case 10061: // WSAECONNREFUSED
		return replyConnectionRefused, true
	case 10060: // WSAETIMEDOUT
		return replyTTLExpired, true

	// POSIX equivalents, required by spec.md in addition to the WinSock table.
	case posixENETUNREACH:
		return replyNetworkUnreachable, true
	case posixEHOSTUNREACH:
		return replyHostUnreachable, true
	case posixECONNREFUSED:
		return replyConnectionRefused, true
	case posixETIMEDOUT:
		return replyTTLExpired, true
	}

	return replyGeneralFailure, false
}
