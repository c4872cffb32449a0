package embedded

import (
	"embed"
	"testing"
)

// 注意：由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// 真正的资源嵌入在项目根目录的 embed.go 中。
// 这里用空的 embed.FS 测试接口行为。

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	var emptyFS embed.FS
	Init(emptyFS)

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}

	// 重置状态以避免影响其他测试
	initialized = false
}

// TestReadFileNotInitialized 测试未初始化时调用 ReadFile
func TestReadFileNotInitialized(t *testing.T) {
	initialized = false

	_, err := ReadFile("data/test.yaml")
	if err == nil {
		t.Error("Expected error when calling ReadFile() before Init()")
	}
	if err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFileInvalidPrefix 测试无效路径前缀
func TestReadFileInvalidPrefix(t *testing.T) {
	var emptyFS embed.FS
	Init(emptyFS)
	defer func() { initialized = false }()

	_, err := ReadFile("invalid/path/test.yaml")
	if err == nil {
		t.Error("Expected error for invalid path prefix")
	}
	if err.Error() != "unknown resource path prefix: invalid/path/test.yaml (must start with 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestReadFileDataPath 测试有效前缀但文件不存在
func TestReadFileDataPath(t *testing.T) {
	var emptyFS embed.FS
	Init(emptyFS)
	defer func() { initialized = false }()

	// 空 FS 应该返回文件不存在错误（而不是前缀错误）
	_, err := ReadFile("data/test.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file in empty FS")
	}
	if err.Error() == "unknown resource path prefix: data/test.yaml (must start with 'data/')" {
		t.Error("Should recognize 'data/' as valid prefix")
	}
}

// TestReadFilePathNormalization 测试 "./" 前缀被正确移除
func TestReadFilePathNormalization(t *testing.T) {
	var emptyFS embed.FS
	Init(emptyFS)
	defer func() { initialized = false }()

	_, err := ReadFile("./data/test.yaml")
	if err == nil {
		t.Error("Expected error for non-existent file")
	}
	// 规范化后 "./" 前缀不应导致前缀错误
	if err.Error() == "unknown resource path prefix: ./data/test.yaml (must start with 'data/')" {
		t.Error("Path normalization should remove './' prefix")
	}
}
