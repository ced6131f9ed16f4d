package types

// EnvInfo describes the host the demo runs on.
type EnvInfo struct {
	OS                string `json:"os"`
	IsRaspberryPi     bool   `json:"is_raspberry_pi"`
	IsHeadless        bool   `json:"is_headless"`
	IsVNC             bool   `json:"is_vnc"`
	SenseHatAvailable bool   `json:"sensehat_available"`
	NeoPixelAvailable bool   `json:"neopixel_available"`
	SenseHatEmulator  bool   `json:"sensehat_emulator"`
	IsRoot            bool   `json:"is_root"`
}
