// SPDX-FileCopyrightText: 2025 Comcast Cable Communications Management, LLC
// SPDX-License-Identifier: Apache-2.0

/*
Package xviper holds the conventions for loading configuration with viper and pflag: the standard
*nix search paths, the --file and --name flags, environment variables prefixed with the application
name, and a --debug flag that forces debug logging.
*/
package xviper
