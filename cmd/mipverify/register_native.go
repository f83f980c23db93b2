//go:build !nogpu

package main

import (
	// Register the native GPU backend.
	_ "github.com/gogpu/miptex/backend/native"
)
