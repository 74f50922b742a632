/*
Package params defines the node configuration of gasdistd.

Values are read from the app options, which the CLI backs with viper over
<home>/config/app.toml and command line flags:

	[gasdist]
	max-msg-size = 65536
	distribute-interval = "0s"

	[api]
	address = "tcp://127.0.0.1:1317"

	[telemetry]
	enabled = false

A distribute interval of zero disables the scheduled distribute loop of
the start command.
*/
package params
