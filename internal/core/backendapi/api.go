// Package backendapi は将来のバックエンド接続用 API の入口です。
// 現時点ではどの操作も未実装エラーを返します。
package backendapi

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented は未実装の操作が呼び出された場合に返却されます。
	ErrNotImplemented = errors.New("backendapi: not implemented")
	// ErrUnknownOperation は存在しないリソース・操作が指定された場合に返却されます。
	ErrUnknownOperation = errors.New("backendapi: unknown operation")
)

// NotImplementedError は呼び出された操作名を保持します。
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("[api] %s not implemented yet. Hook this to a backend later.", e.Op)
}

// Is により errors.Is(err, ErrNotImplemented) が成立します。
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// Record はスキーマ未確定のエンティティです。
type Record map[string]any

// Collection は一覧・作成・更新・削除を持つリソースです。
type Collection interface {
	List(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, in Record) (Record, error)
	Update(ctx context.Context, id string, patch Record) (Record, error)
	Delete(ctx context.Context, id string) error
}

// UserCollection はユーザーリソースです。作成と削除は提供しません。
type UserCollection interface {
	List(ctx context.Context) ([]Record, error)
	Update(ctx context.Context, id string, patch Record) (Record, error)
}

// API は管理画面が利用するリソースの集合です。
type API struct {
	Document       Collection
	FeedPost       Collection
	Shift          Collection
	User           UserCollection
	OnboardingTask Collection
}

// NewUnimplemented はすべての操作が NotImplementedError を返す API を生成します。
func NewUnimplemented() *API {
	return &API{
		Document:       unimplemented{resource: "Document"},
		FeedPost:       unimplemented{resource: "FeedPost"},
		Shift:          unimplemented{resource: "Shift"},
		User:           unimplemented{resource: "User"},
		OnboardingTask: unimplemented{resource: "OnboardingTask"},
	}
}

// Invoke は resource と operation 名で操作を呼び出します。
// 存在しない組み合わせは ErrUnknownOperation を返します。
func (a *API) Invoke(ctx context.Context, resource, operation string) error {
	var err error
	switch resource {
	case "Document":
		err = invokeCollection(ctx, a.Document, operation)
	case "FeedPost":
		err = invokeCollection(ctx, a.FeedPost, operation)
	case "Shift":
		err = invokeCollection(ctx, a.Shift, operation)
	case "OnboardingTask":
		err = invokeCollection(ctx, a.OnboardingTask, operation)
	case "User":
		switch operation {
		case "list":
			_, err = a.User.List(ctx)
		case "update":
			_, err = a.User.Update(ctx, "", nil)
		default:
			err = errUnknown(resource, operation)
		}
	default:
		err = errUnknown(resource, operation)
	}
	return err
}

func errUnknown(resource, operation string) error {
	return fmt.Errorf("%s.%s: %w", resource, operation, ErrUnknownOperation)
}

func invokeCollection(ctx context.Context, c Collection, operation string) error {
	var err error
	switch operation {
	case "list":
		_, err = c.List(ctx)
	case "create":
		_, err = c.Create(ctx, nil)
	case "update":
		_, err = c.Update(ctx, "", nil)
	case "delete":
		err = c.Delete(ctx, "")
	default:
		return fmt.Errorf("%s: %w", operation, ErrUnknownOperation)
	}
	return err
}

type unimplemented struct {
	resource string
}

func (u unimplemented) fail(op string) error {
	return &NotImplementedError{Op: u.resource + "." + op}
}

func (u unimplemented) List(context.Context) ([]Record, error) {
	return nil, u.fail("list")
}

func (u unimplemented) Create(context.Context, Record) (Record, error) {
	return nil, u.fail("create")
}

func (u unimplemented) Update(context.Context, string, Record) (Record, error) {
	return nil, u.fail("update")
}

func (u unimplemented) Delete(context.Context, string) error {
	return u.fail("delete")
}
