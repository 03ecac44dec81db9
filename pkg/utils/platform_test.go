//go:build !mobile

package utils

import "testing"

// 桌面端默认不是移动模式
func TestIsMobile_Desktop(t *testing.T) {
	t.Setenv("CAMPUS_MOBILE_EMULATE", "")
	if IsMobile() {
		t.Error("IsMobile() should return false on desktop")
	}
}

// 设置环境变量后模拟移动端
func TestIsMobile_Emulated(t *testing.T) {
	t.Setenv("CAMPUS_MOBILE_EMULATE", "1")
	if !IsMobile() {
		t.Error("IsMobile() should return true when CAMPUS_MOBILE_EMULATE=1")
	}
}

func TestEnsureStorageDir_Desktop(t *testing.T) {
	if err := EnsureStorageDir(); err != nil {
		t.Errorf("EnsureStorageDir() = %v, want nil", err)
	}
	if got := GetStoragePath(); got != "" {
		t.Errorf("GetStoragePath() = %q, want empty", got)
	}
}
