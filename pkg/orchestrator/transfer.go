package orchestrator

import (
	"bufio"
	"strconv"
	"strings"
)

// DefaultTransferTool is the multi-stream download utility.
const DefaultTransferTool = "aria2c"

// Environment passed to the completion callback.
const (
	EnvDescriptorFile    = "GEOFETCH_DESCRIPTOR_FILE"
	EnvAreaName          = "GEOFETCH_AREA_NAME"
	EnvMinZoom           = "GEOFETCH_MIN_ZOOM"
	EnvMaxZoom           = "GEOFETCH_MAX_ZOOM"
	EnvDescriptorVersion = "GEOFETCH_DESCRIPTOR_VERSION"
)

// callbackFlagPrefix matches every aria2c event hook option.
const callbackFlagPrefix = "--on-download-"

// TransferArgs builds the transfer tool arguments and the extra environment
// for plan. Defaults are only added when passThrough carries no equivalent
// flag; passThrough follows the defaults and the URLs come last.
func TransferArgs(plan *Plan, passThrough []string, userAgent, self string, desc *DescriptorRequest) ([]string, []string) {
	var args, env []string

	if plan.Hash != "" && !hasFlag(passThrough, "--checksum", "") {
		args = append(args, "--checksum=md5="+plan.Hash)
	}
	if !hasFlag(passThrough, "--split", "-s") {
		args = append(args, "--split="+strconv.Itoa(len(plan.URLs)))
	}
	if !hasFlag(passThrough, "--http-accept-gzip", "") {
		args = append(args, "--http-accept-gzip=true")
	}
	if userAgent != "" && !hasFlag(passThrough, "--user-agent", "-U") {
		args = append(args, "--user-agent="+userAgent)
	}

	if desc != nil {
		args = append(args, "--on-download-complete="+self)
		area := desc.AreaName
		if area == "" {
			area = plan.Name
		}
		env = append(env,
			EnvDescriptorFile+"="+desc.Path,
			EnvAreaName+"="+area,
			EnvMinZoom+"="+strconv.Itoa(desc.MinZoom),
			EnvMaxZoom+"="+strconv.Itoa(desc.MaxZoom),
			EnvDescriptorVersion+"="+desc.Version,
		)
	}

	args = append(args, passThrough...)
	args = append(args, plan.URLs...)
	return args, env
}

// hasFlag reports whether args set the option long or its short form.
// Both "--flag value" and "--flag=value" spellings are recognized, and a
// short form may carry its value attached ("-s4").
func hasFlag(args []string, long, short string) bool {
	for _, arg := range args {
		if arg == long || strings.HasPrefix(arg, long+"=") {
			return true
		}
		if short != "" && strings.HasPrefix(arg, short) {
			return true
		}
	}
	return false
}

// registersCallback reports whether any event hook option is present.
func registersCallback(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, callbackFlagPrefix) {
			return true
		}
	}
	return false
}

// failureBanner returns the first stderr line showing that a completion
// callback failed: our own "Error: " line or a Go panic trace.
func failureBanner(stderr string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(stderr))
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "Error: ") || strings.Contains(line, "panic:") {
			return line, true
		}
	}
	return "", false
}
