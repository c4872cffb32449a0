package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ViewerPreferences 演示程序的查看器偏好
// 注意：这些偏好是全局的，不绑定到特定场景
type ViewerPreferences struct {
	// ActiveProfile 当前选用的相机档案名,空字符串表示使用默认档案
	ActiveProfile string `yaml:"activeProfile"`

	// ShowGuides 是否绘制取景框(死区/软区)
	ShowGuides bool `yaml:"showGuides"`

	// ShowTrackedPoint 是否绘制跟踪点标记
	ShowTrackedPoint bool `yaml:"showTrackedPoint"`
}

// DefaultPreferences 返回默认偏好
func DefaultPreferences() *ViewerPreferences {
	return &ViewerPreferences{
		ActiveProfile:    "",
		ShowGuides:       true,
		ShowTrackedPoint: true,
	}
}

// PreferencesManager 偏好管理器
// 负责查看器偏好的加载、保存和内存管理
type PreferencesManager struct {
	gdataManager *gdata.Manager     // gdata 跨平台存储管理器，可为 nil（降级模式）
	preferences  *ViewerPreferences // 当前偏好
}

// 存储路径常量
const (
	preferencesObject   = "viewer"
	preferencesProperty = "preferences"
)

// NewPreferencesManager 创建新的偏好管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存偏好）
//
// 返回：
//   - *PreferencesManager: 偏好管理器实例
//   - error: 如果加载偏好失败返回错误（不影响创建）
func NewPreferencesManager(gdataManager *gdata.Manager) (*PreferencesManager, error) {
	pm := &PreferencesManager{
		gdataManager: gdataManager,
		preferences:  DefaultPreferences(),
	}

	// 尝试加载已保存的偏好
	if err := pm.Load(); err != nil {
		// 加载失败不是致命错误，使用默认偏好
		log.Printf("[PreferencesManager] Warning: Failed to load preferences: %v (using defaults)", err)
	}

	return pm, nil
}

// Load 从 gdata 加载偏好
//
// 如果 gdataManager 为 nil 或文件不存在，使用默认偏好
func (pm *PreferencesManager) Load() error {
	// 降级模式：无法持久化，使用默认偏好
	if pm.gdataManager == nil {
		pm.preferences = DefaultPreferences()
		return nil
	}

	if !pm.gdataManager.ObjectPropExists(preferencesObject, preferencesProperty) {
		pm.preferences = DefaultPreferences()
		return nil
	}

	data, err := pm.gdataManager.LoadObjectProp(preferencesObject, preferencesProperty)
	if err != nil {
		pm.preferences = DefaultPreferences()
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	var loaded ViewerPreferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		pm.preferences = DefaultPreferences()
		return fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	pm.preferences = &loaded
	log.Printf("[PreferencesManager] Preferences loaded successfully")
	return nil
}

// Save 保存偏好到 gdata
//
// 如果 gdataManager 为 nil，返回 nil（降级模式，不报错）
func (pm *PreferencesManager) Save() error {
	if pm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(pm.preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := pm.gdataManager.SaveObjectProp(preferencesObject, preferencesProperty, data); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}

// GetPreferences 返回当前偏好（内存副本的引用）
func (pm *PreferencesManager) GetPreferences() *ViewerPreferences {
	return pm.preferences
}

// SetActiveProfile 设置当前相机档案名并保存
func (pm *PreferencesManager) SetActiveProfile(name string) {
	pm.preferences.ActiveProfile = name
	if err := pm.Save(); err != nil {
		log.Printf("[PreferencesManager] Warning: Failed to save preferences: %v", err)
	}
}

// SetShowGuides 设置取景框显示开关并保存
func (pm *PreferencesManager) SetShowGuides(show bool) {
	pm.preferences.ShowGuides = show
	if err := pm.Save(); err != nil {
		log.Printf("[PreferencesManager] Warning: Failed to save preferences: %v", err)
	}
}

// SetShowTrackedPoint 设置跟踪点标记显示开关并保存
func (pm *PreferencesManager) SetShowTrackedPoint(show bool) {
	pm.preferences.ShowTrackedPoint = show
	if err := pm.Save(); err != nil {
		log.Printf("[PreferencesManager] Warning: Failed to save preferences: %v", err)
	}
}
