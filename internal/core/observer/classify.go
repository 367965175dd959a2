package observer

import (
	"net"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// sysClassNet Linux sysfs 网络设备目录
var sysClassNet = "/sys/class/net"

// namePrefixes 名称前缀分类表，按前缀长度从长到短匹配
var namePrefixes = []struct {
	prefix string
	kind   kindHint
}{
	{"pdp_ip", hintCellular},
	{"ccmni", hintCellular},
	{"rmnet", hintCellular},
	{"wwan", hintCellular},
	{"wlan", hintWiFi},
	{"wifi", hintWiFi},
	{"bond", hintEthernet},
	{"wlp", hintWiFi},
	{"wlx", hintWiFi},
	{"eth", hintEthernet},
	{"enp", hintEthernet},
	{"ens", hintEthernet},
	{"eno", hintEthernet},
	{"enx", hintEthernet},
	{"ath", hintWiFi},
	{"wl", hintWiFi},
	{"en", hintEthernet},
	{"em", hintEthernet},
	{"lo", hintLoopback},
}

func init() {
	sort.SliceStable(namePrefixes, func(i, j int) bool {
		return len(namePrefixes[i].prefix) > len(namePrefixes[j].prefix)
	})
}

// kindHint 分类中间结果，避免在表中直接引用 types 常量
type kindHint int

const (
	hintOther kindHint = iota
	hintWiFi
	hintCellular
	hintEthernet
	hintLoopback
)

// ifaceInfo 接口快照
type ifaceInfo struct {
	Name      string
	Index     int
	HWAddr    string
	Flags     net.Flags
	Addresses []string
	Wireless  bool
}

func (i ifaceInfo) up() bool {
	return i.Flags&net.FlagUp != 0
}

func (i ifaceInfo) loopback() bool {
	return i.Flags&net.FlagLoopback != 0
}

// classifyName 按名称和无线标志分类
func classifyName(name string, flags net.Flags, wireless bool) kindHint {
	if flags&net.FlagLoopback != 0 {
		return hintLoopback
	}
	if wireless {
		return hintWiFi
	}
	lower := strings.ToLower(name)
	for _, p := range namePrefixes {
		if strings.HasPrefix(lower, p.prefix) {
			return p.kind
		}
	}
	return hintOther
}

// isWireless 检查 sysfs 中是否存在 wireless 或 phy80211 目录
func isWireless(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) {
		return false
	}
	for _, sub := range []string{"wireless", "phy80211"} {
		if _, err := os.Stat(filepath.Join(sysClassNet, name, sub)); err == nil {
			return true
		}
	}
	return false
}
