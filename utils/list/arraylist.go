package list

import (
	"fmt"
	"sync"
)

// List Definir la interfaz List
type List[T any] interface {
	Add(item T)                                 // Añadir un elemento al final de la lista
	Dequeue() (T, error)                        // Eliminar y devolver el primer elemento de la lista
	Find(predicate func(T) bool) (T, int, bool) // Permite buscar un elemento de la lista dado un predicado.
	Get(index int) (T, error)                   // Obtener un elemento a partir de un índice dado
	GetAll() []T                                // Retorna todos los elementos que se encuentra en la lista
	MoveToBack(index int) error                 // Mueve el elemento del índice dado al final de la lista
	RemoveWhere(match func(T) bool) bool        // Elimina el primer elemento que cumpla el predicado
	Size() int                                  // Retornar el tamaño de la lista
}

// ArrayList implements List
type ArrayList[T any] struct {
	mu    sync.RWMutex
	items []T
}

// NewArrayList crea una lista con los elementos dados, en ese orden.
//
// Ejemplo:
//
//	func main() {
//		frames := list.NewArrayList(0, 1, 2, 3)
//		frame, _ := frames.Dequeue()
//		fmt.Println("Frame: ", frame) //output: 0
//	}
func NewArrayList[T any](items ...T) *ArrayList[T] {
	list := &ArrayList[T]{
		items: make([]T, 0, len(items)), // Inicializa el slice interno vacío
	}
	list.items = append(list.items, items...)
	return list
}

// Add inserta un elemento al final de la lista.
//
// Parámetros:
//   - item: Elemento a insertar.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(20)
//	}
func (list *ArrayList[T]) Add(item T) {
	list.mu.Lock() // Bloqueo exclusivo para evitar cambios simultáneos
	defer list.mu.Unlock()

	list.items = append(list.items, item)
}

// Dequeue elimina y devuelve el primer elemento de la cola.
// En caso de que la lista se encuentre vacío retorna el valor "cero" del tipo T y un error indicando que está vacía.
//
// Ejemplo:
//
//	func main() {
//		numbers := &list.ArrayList[int]{}
//		numbers.Add(10)
//		numbers.Add(20)
//		numbers.Add(30)
//		value, _ := numbers.Dequeue()
//		fmt.Println("Valor: ", value) //output: 10
//	}
func (list *ArrayList[T]) Dequeue() (T, error) {
	list.mu.Lock()
	defer list.mu.Unlock()

	if len(list.items) == 0 {
		var zero T // Devuelve el valor "cero" del tipo T
		return zero, fmt.Errorf("list is empty")
	}
	valor := list.items[0]
	list.items = list.items[1:]
	return valor, nil
}

// Find permite buscar un elemento de la lista dado un predicado.
// Retorna el elemento, su índice y si fue encontrado.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//
//		list.Add(10)
//		list.Add(20)
//		list.Add(30)
//
//		number, index, found := list.Find(func(number int) bool {
//			return number == 20
//		})
//	}
func (list *ArrayList[T]) Find(predicate func(T) bool) (T, int, bool) {
	list.mu.RLock() //Bloqueo de solo lectura: permite otras lecturas concurrentes
	defer list.mu.RUnlock()

	for i, item := range list.items {
		if predicate(item) {
			return item, i, true
		}
	}
	var zero T
	return zero, -1, false
}

// Get devuelve el elemento en el índice proporcionado.
//
// Ejemplo:
//
//	func main() {
//		list := &ArrayList[int]{}
//		list.Add(10)
//		list.Add(20)
//		list.Add(30)
//
//		value, _ := list.Get(1)
//		fmt.Println("Valor: ", value) //Output: 20
//	}
func (list *ArrayList[T]) Get(index int) (T, error) {
	list.mu.RLock()
	defer list.mu.RUnlock()

	if index < 0 || index >= len(list.items) {
		var zero T
		return zero, fmt.Errorf("index out of range: %d", index)
	}
	return list.items[index], nil
}

// GetAll retorna una copia de todos los elementos que se encuentra en la lista
func (list *ArrayList[T]) GetAll() []T {
	list.mu.RLock()
	defer list.mu.RUnlock()

	// Crear una copia del slice para evitar que modificaciones externas afecten la lista interna
	itemsCopy := make([]T, len(list.items))
	copy(itemsCopy, list.items)
	return itemsCopy
}

// MoveToBack mueve el elemento del índice dado al final de la lista, conservando el orden del resto.
// Se usa para llevar una entrada a la posición de "más recientemente usada".
//
// Ejemplo:
//
//	func main() {
//		list := list.NewArrayList(10, 20, 30)
//		_ = list.MoveToBack(0) //[20, 30, 10]
//	}
func (list *ArrayList[T]) MoveToBack(index int) error {
	list.mu.Lock()
	defer list.mu.Unlock()

	if index < 0 || index >= len(list.items) {
		return fmt.Errorf("index out of range: %d", index)
	}
	item := list.items[index]
	list.items = append(list.items[:index], list.items[index+1:]...)
	list.items = append(list.items, item)
	return nil
}

// RemoveWhere elimina el primer elemento que cumpla el predicado. Retorna si eliminó alguno.
func (list *ArrayList[T]) RemoveWhere(match func(T) bool) bool {
	list.mu.Lock()
	defer list.mu.Unlock()

	for i, item := range list.items {
		if match(item) {
			list.items = append(list.items[:i], list.items[i+1:]...)
			return true
		}
	}
	return false
}

// Size devuelve el tamaño de la lista.
func (list *ArrayList[T]) Size() int {
	list.mu.RLock() ///Bloqueo de solo lectura: permite otras lecturas concurrentes
	defer list.mu.RUnlock()

	return len(list.items)
}
