package ecs

import (
	"reflect"
	"testing"
)

// 测试组件类型定义
type testPositionComponent struct {
	X, Y float64
}

type testVelocityComponent struct {
	VX, VY float64
}

func TestCreateEntity(t *testing.T) {
	em := NewEntityManager()
	id1 := em.CreateEntity()
	id2 := em.CreateEntity()

	// 测试实体ID唯一性
	if id1 == id2 {
		t.Error("Entity IDs should be unique")
	}

	// 测试ID从1开始
	if id1 != 1 {
		t.Errorf("First entity ID should be 1, got %d", id1)
	}

	if !em.Exists(id2) || em.Exists(99) {
		t.Error("Exists() mismatch")
	}
	if em.Count() != 2 {
		t.Errorf("Count() = %d, want 2", em.Count())
	}
}

func TestAddAndGetComponent(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	pos := &testPositionComponent{X: 100, Y: 200}
	em.AddComponent(id, pos)

	comp, found := em.GetComponent(id, reflect.TypeOf(&testPositionComponent{}))
	if !found {
		t.Fatal("Component should be found")
	}

	retrieved := comp.(*testPositionComponent)
	if retrieved.X != 100 || retrieved.Y != 200 {
		t.Errorf("Component data mismatch, expected (100, 200), got (%f, %f)", retrieved.X, retrieved.Y)
	}
}

func TestGenericComponentHelpers(t *testing.T) {
	em := NewEntityManager()
	id := em.CreateEntity()

	AddComponent(em, id, &testPositionComponent{X: 1, Y: 2})

	pos, ok := GetComponent[*testPositionComponent](em, id)
	if !ok || pos.X != 1 || pos.Y != 2 {
		t.Fatalf("GetComponent = %+v, %v", pos, ok)
	}

	// 通过指针修改组件应对后续查询可见
	pos.X = 42
	again, _ := GetComponent[*testPositionComponent](em, id)
	if again.X != 42 {
		t.Errorf("component should be shared by pointer, got X=%v", again.X)
	}

	if HasComponent[*testVelocityComponent](em, id) {
		t.Error("Velocity component should not exist")
	}
	if _, ok := GetComponent[*testVelocityComponent](em, id); ok {
		t.Error("GetComponent should fail for missing component")
	}
}

func TestGetEntitiesWith_PreservesCreationOrder(t *testing.T) {
	em := NewEntityManager()

	ids := make([]EntityID, 0, 20)
	for i := 0; i < 20; i++ {
		id := em.CreateEntity()
		AddComponent(em, id, &testPositionComponent{X: float64(i)})
		if i%2 == 0 {
			AddComponent(em, id, &testVelocityComponent{})
		}
		ids = append(ids, id)
	}

	all := GetEntitiesWith1[*testPositionComponent](em)
	if len(all) != 20 {
		t.Fatalf("Expected 20 entities, got %d", len(all))
	}
	for i, id := range all {
		if id != ids[i] {
			t.Fatalf("entity %d out of order: got %d want %d", i, id, ids[i])
		}
	}

	moving := GetEntitiesWith2[*testPositionComponent, *testVelocityComponent](em)
	if len(moving) != 10 {
		t.Errorf("Expected 10 entities with both components, got %d", len(moving))
	}
	for i := 1; i < len(moving); i++ {
		if moving[i] <= moving[i-1] {
			t.Errorf("query result not in creation order: %v", moving)
		}
	}
}
