package netx

import (
	"errors"
	"net"
)

// ErrNoLocalIPv4 本机没有可用的非回环 IPv4 地址
var ErrNoLocalIPv4 = errors.New("netx: 没有找到本机 IPv4 地址")

// 方便测试替换
var interfaceAddrs = net.InterfaceAddrs

// LocalIPv4 获取本机 IPv4。
// 优先返回公网地址，没有配置公网地址的时候返回找到的最后一个内网地址
func LocalIPv4() (net.IP, error) {
	addrs, err := interfaceAddrs()
	if err != nil {
		return nil, err
	}
	return pickIPv4(addrs)
}

func pickIPv4(addrs []net.Addr) (net.IP, error) {
	var local net.IP
	for _, addr := range addrs {
		var ip net.IP
		switch v := addr.(type) {
		case *net.IPNet:
			ip = v.IP
		case *net.IPAddr:
			ip = v.IP
		default:
			continue
		}
		ip4 := ip.To4()
		if ip4 == nil || ip4.IsLoopback() || ip4.IsUnspecified() || ip4.IsLinkLocalUnicast() {
			continue
		}
		if !ip4.IsPrivate() {
			return ip4, nil
		}
		local = ip4
	}
	if local == nil {
		return nil, ErrNoLocalIPv4
	}
	return local, nil
}

// WorkerIDFromLocalIPv4 用本机 IPv4 的最后一段作为机器 ID，范围 [0, 255]
func WorkerIDFromLocalIPv4() (int64, error) {
	ip, err := LocalIPv4()
	if err != nil {
		return 0, err
	}
	return int64(ip[len(ip)-1]), nil
}
