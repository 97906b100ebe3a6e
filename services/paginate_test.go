package services

import (
	"errors"
	"strconv"
	"testing"
)

func TestPaginateSliceCeilTotalPages(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page := paginateSlice(items, 1, 2)
	if page.Meta.TotalPages != 3 {
		t.Errorf("total_pages = %d, ожидалось 3", page.Meta.TotalPages)
	}
	if page.Meta.TotalItems != 5 {
		t.Errorf("total_items = %d, ожидалось 5", page.Meta.TotalItems)
	}
}

func TestPaginateSliceLastPartialPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	page := paginateSlice(items, 3, 2)
	if len(page.Items) != 1 || page.Items[0] != 5 {
		t.Errorf("последняя страница: %v", page.Items)
	}
}

func TestPaginateSliceOutOfRange(t *testing.T) {
	items := []int{1, 2, 3}
	page := paginateSlice(items, 10, 2)
	if len(page.Items) != 0 {
		t.Errorf("за границей ожидалась пустая страница, получено %v", page.Items)
	}
	if page.Meta.Page != 10 || page.Meta.TotalItems != 3 {
		t.Errorf("итоги должны сохраняться: %+v", page.Meta)
	}
}

func TestPaginateSliceEmpty(t *testing.T) {
	page := paginateSlice([]int{}, 1, 10)
	if len(page.Items) != 0 || page.Meta.TotalPages != 0 {
		t.Errorf("пустой список: %+v", page.Meta)
	}
}

func TestMapPageConverts(t *testing.T) {
	source := paginateSlice([]int{1, 2, 3}, 1, 2)
	result, err := mapPage(source, func(v *int) (string, error) {
		return strconv.Itoa(*v), nil
	})
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if result.Meta != source.Meta {
		t.Errorf("метаданные должны переноситься без изменений: %+v", result.Meta)
	}
	if len(result.Items) != 2 || result.Items[0] != "1" {
		t.Errorf("элементы: %v", result.Items)
	}
}

func TestMapPagePropagatesError(t *testing.T) {
	source := paginateSlice([]int{1}, 1, 10)
	wantErr := errors.New("не удалось собрать представление")
	_, err := mapPage(source, func(v *int) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("ожидалась ошибка конвертации, получено %v", err)
	}
}
