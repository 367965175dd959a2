package types

import "testing"

func TestDeriveStatus(t *testing.T) {
	tests := []struct {
		connected  bool
		primary    Interface
		hasPrimary bool
		want       Status
	}{
		{true, InterfaceWiFi, true, StatusConnectedViaWiFi},
		{false, InterfaceWiFi, true, StatusConnectedViaWiFiWithoutInternet},
		{true, InterfaceCellular, true, StatusConnectedViaCellular},
		{false, InterfaceCellular, true, StatusConnectedViaCellularWithoutInternet},
		{true, InterfaceEthernet, true, StatusConnectedViaEthernet},
		{false, InterfaceEthernet, true, StatusConnectedViaEthernetWithoutInternet},
		{true, InterfaceLoopback, true, StatusConnected},
		{false, InterfaceOther, true, StatusNotConnected},
		{true, InterfaceWiFi, false, StatusConnected},
		{false, InterfaceWiFi, false, StatusNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			if got := DeriveStatus(tt.connected, tt.primary, tt.hasPrimary); got != tt.want {
				t.Errorf("DeriveStatus(%v, %v, %v) = %v, want %v",
					tt.connected, tt.primary, tt.hasPrimary, got, tt.want)
			}
			if got := tt.want.IsConnected(); got != tt.connected {
				t.Errorf("%v.IsConnected() = %v, want %v", tt.want, got, tt.connected)
			}
		})
	}
}

func TestStatus_Determining(t *testing.T) {
	if StatusDetermining.IsConnected() {
		t.Error("determining must not be connected")
	}
	if StatusDetermining.IsDisconnected() {
		t.Error("determining must not be disconnected")
	}
	// 任何推导结果都不等于 determining，首轮一定视为变更
	for _, connected := range []bool{true, false} {
		for i := InterfaceOther; i <= InterfaceLoopback; i++ {
			for _, has := range []bool{true, false} {
				if DeriveStatus(connected, i, has) == StatusDetermining {
					t.Fatalf("DeriveStatus(%v, %v, %v) = determining", connected, i, has)
				}
			}
		}
	}
}

func TestStatus_TextRoundTrip(t *testing.T) {
	for s := range statusNames {
		b, _ := s.MarshalText()
		var got Status
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%q) error = %v", b, err)
		}
		if got != s {
			t.Errorf("round trip %v -> %v", s, got)
		}
	}
}

func TestParseInterface(t *testing.T) {
	tests := map[string]Interface{
		"wifi":     InterfaceWiFi,
		"WLAN":     InterfaceWiFi,
		"cellular": InterfaceCellular,
		"ethernet": InterfaceEthernet,
		"loopback": InterfaceLoopback,
		"other":    InterfaceOther,
	}
	for in, want := range tests {
		got, err := ParseInterface(in)
		if err != nil || got != want {
			t.Errorf("ParseInterface(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseInterface("token-ring"); err == nil {
		t.Error("expected error for unknown interface")
	}
}
