package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y, Z float64
}

type testTagComponent struct {
	Name string
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// ID从1开始，0保留为无效ID
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if em.EntityCount() != 2 {
		t.Errorf("EntityCount: got %d, want 2", em.EntityCount())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 15, Y: 0, Z: -5})

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	pos := comp.(*testPositionComponent)
	if pos.X != 15 || pos.Z != -5 {
		t.Errorf("Component data mismatch, got (%f, %f, %f)", pos.X, pos.Y, pos.Z)
	}
}

func TestDestroyEntity(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &testPositionComponent{})

	em.DestroyEntity(id)

	// 清理前实体仍存在
	if !em.Exists(id) {
		t.Error("Entity should still exist before cleanup")
	}

	em.RemoveMarkedEntities()
	if em.Exists(id) {
		t.Error("Entity should be removed after cleanup")
	}
	if em.HasComponent(id, reflect.TypeOf(&testPositionComponent{})) {
		t.Error("Removed entity should have no components")
	}
}

func TestAddComponentToMissingEntity(t *testing.T) {
	em := NewEntityManager()

	// 不存在的实体：静默忽略
	em.AddComponent(42, &testPositionComponent{})
	AddComponent(em, 42, &testTagComponent{Name: "x"})

	if em.EntityCount() != 0 {
		t.Errorf("EntityCount: got %d, want 0", em.EntityCount())
	}
}

func TestGenericHelpers(t *testing.T) {
	em := NewEntityManager()

	id1 := em.CreateEntity()
	AddComponent(em, id1, &testPositionComponent{X: 1})
	AddComponent(em, id1, &testTagComponent{Name: "Library"})

	id2 := em.CreateEntity()
	AddComponent(em, id2, &testPositionComponent{X: 2})

	tag, ok := GetComponent[*testTagComponent](em, id1)
	if !ok || tag.Name != "Library" {
		t.Fatalf("GetComponent: got (%v, %v)", tag, ok)
	}

	if _, ok := GetComponent[*testTagComponent](em, id2); ok {
		t.Error("id2 should not have a tag component")
	}

	if got := len(GetEntitiesWith1[*testPositionComponent](em)); got != 2 {
		t.Errorf("GetEntitiesWith1: got %d entities, want 2", got)
	}

	both := GetEntitiesWith2[*testPositionComponent, *testTagComponent](em)
	if len(both) != 1 || both[0] != id1 {
		t.Errorf("GetEntitiesWith2: got %v, want [%d]", both, id1)
	}

	RemoveComponent[*testTagComponent](em, id1)
	if HasComponent[*testTagComponent](em, id1) {
		t.Error("tag component should be removed")
	}
}

func TestFirstEntityWith(t *testing.T) {
	em := NewEntityManager()

	if _, ok := FirstEntityWith[*testTagComponent](em); ok {
		t.Error("empty manager should not find any entity")
	}

	id := em.CreateEntity()
	AddComponent(em, id, &testTagComponent{Name: "panel"})

	got, ok := FirstEntityWith[*testTagComponent](em)
	if !ok || got != id {
		t.Errorf("FirstEntityWith: got (%d, %v), want (%d, true)", got, ok, id)
	}
}

// 反射版本与泛型版本必须使用同一个类型键
func TestReflectAndGenericInterop(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	em.AddComponent(id, &testPositionComponent{X: 3})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos.X != 3 {
		t.Errorf("generic lookup of reflect-added component failed: (%v, %v)", pos, ok)
	}
}
