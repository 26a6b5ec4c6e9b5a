package main

import "github.com/bakerbass/guitarchops/cmd"

// @title           GuitarChops API
// @version         1.0
// @description     Audio analysis API for building practice loops: waveform peaks, silence/onset/key/tempo segmentation and segment export.
// @contact.name    API Support
// @contact.url     https://github.com/bakerbass/guitarchops
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8000
// @BasePath        /
// @schemes         http
func main() {
	cmd.Execute()
}
