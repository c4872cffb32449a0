package ecs

import "reflect"

// TypeOf 返回组件类型 T 的 reflect.Type,用于 GetEntitiesWith 查询
func TypeOf[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// AddComponent 为实体添加组件(类型安全封装)
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	em.addComponent(id, component)
}

// GetComponent 获取实体的 T 类型组件,不存在时返回零值和 false
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, found := em.getComponent(id, TypeOf[T]())
	if !found {
		var zero T
		return zero, false
	}
	return comp.(T), true
}

// HasComponent 检查实体是否拥有 T 类型组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	return em.hasComponent(id, TypeOf[T]())
}

// GetEntitiesWith1 查询拥有 A 组件的实体
func GetEntitiesWith1[A any](em *EntityManager) []EntityID {
	ta := TypeOf[A]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[ta]; ok {
			result = append(result, id)
		}
	}
	return result
}

// GetEntitiesWith2 查询同时拥有 A、B 两种组件的实体
func GetEntitiesWith2[A, B any](em *EntityManager) []EntityID {
	ta, tb := TypeOf[A](), TypeOf[B]()
	result := make([]EntityID, 0)
	for id, compMap := range em.components {
		if _, ok := compMap[ta]; !ok {
			continue
		}
		if _, ok := compMap[tb]; !ok {
			continue
		}
		result = append(result, id)
	}
	return result
}

// GetEntitiesWith3 查询同时拥有 A、B、C 三种组件的实体
func GetEntitiesWith3[A, B, C any](em *EntityManager) []EntityID {
	tc := TypeOf[C]()
	result := make([]EntityID, 0)
	for _, id := range GetEntitiesWith2[A, B](em) {
		if _, ok := em.components[id][tc]; ok {
			result = append(result, id)
		}
	}
	return result
}
