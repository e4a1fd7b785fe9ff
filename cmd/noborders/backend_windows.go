//go:build windows

package main

// Registers the Win32 backend.
import _ "github.com/1broseidon/noborders/internal/winapi"
