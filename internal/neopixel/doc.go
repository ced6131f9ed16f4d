// Package neopixel drives a chain of three 8x8 WS2812 panels (192 LEDs)
// from the SPI bus.
//
// The 64 logical pixels of a frame are mapped onto the chain with a fixed
// index table; the remaining LEDs stay dark. Each WS2812 data bit is sent
// as one SPI byte at 6.4 MHz, followed by a reset gap of zero bytes.
package neopixel
