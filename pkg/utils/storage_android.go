//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 确保 Android 上的偏好存储目录存在并可写
// gdata 在 Android 上把数据放在 /data/data/{package}/ 下，
// 但不会预先创建子目录。必须在 gdata.Open 之前调用，
// 否则首次保存偏好会失败。
//
// 返回：
//   - error: 目录创建失败或不可写时返回错误
func EnsureStorageDir() error {
	// 从进程信息解析应用包名
	pkg, err := androidPackageName()
	if err != nil {
		return fmt.Errorf("failed to resolve Android package name: %w", err)
	}

	// gdata 的存储子目录: /data/data/{package}/saves
	savesDir := filepath.Join("/data/data", pkg, "saves")

	if err := os.MkdirAll(savesDir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", savesDir, err)
	}

	// 写入探测文件验证目录可写
	probe := filepath.Join(savesDir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", savesDir, err)
	}
	os.Remove(probe)

	return nil
}

// androidPackageName 从 /proc/self/cmdline 读取当前应用的包名
func androidPackageName() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}

	// cmdline 以 null 字节分隔,只取第一段并去掉换行
	name := make([]byte, 0, len(data))
	for _, ch := range data {
		if ch == 0 {
			break
		}
		if ch == '\n' {
			continue
		}
		name = append(name, ch)
	}

	if len(name) == 0 {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return string(name), nil
}

// GetStoragePath 返回 Android 上的应用存储根路径,解析失败返回空字符串
func GetStoragePath() string {
	pkg, err := androidPackageName()
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", pkg)
}
