package address

import "strings"

// remoteKeywords mark Jeju and island regions where carriers charge extra.
var remoteKeywords = []string{
	"제주",
	"서귀포",
	"울릉",
	"독도",
	"강화",
	"백령도",
	"연평도",
	"흑산도",
	"진도",
	"가파도",
	"영도구",
}

// IsRemoteArea reports whether addr looks like a remote-area delivery.
// It is a substring heuristic used for a warning only, not a postal lookup.
func IsRemoteArea(addr string) bool {
	if addr == "" {
		return false
	}
	if strings.Contains(addr, "울릉도") || strings.Contains(addr, "울릉군") {
		return true
	}
	for _, kw := range remoteKeywords {
		if strings.Contains(addr, kw) {
			return true
		}
	}
	return false
}
