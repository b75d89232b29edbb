//go:build !nopdfcpu

package main

import _ "github.com/wudi/pdfmerge/engine/pdfcpu"
