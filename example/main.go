package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/parkingwang/oasgen"
	"github.com/parkingwang/oasgen/pkg/http/web"
	"github.com/parkingwang/oasgen/pkg/oas"
	"github.com/parkingwang/oasgen/pkg/store/database"
)

// User 用户信息
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Email     *string   `gorm:"size:128" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Post 文章
type Post struct {
	ID      uint   `gorm:"primaryKey"`
	UserID  uint   `gorm:"not null"`
	Title   string `gorm:"size:255;not null;default:'untitled'"`
	Content string
}

func (Post) HiddenFields() []string {
	return []string{"user_id"}
}

var info = oasgen.AppInfo{
	Name:        "example",
	Description: "这是一个演示",
	Version:     "1.0.0",
}

func main() {
	// 配置文件中 store.database.default 使用 sqlite
	// oas.document 中 components.schemas.models 引用 models.User models.Post
	oasgen.SetConfig("config.yaml")
	app := oasgen.New(info)

	if err := database.Get(context.Background()).AutoMigrate(&User{}, &Post{}); err != nil {
		slog.Error("migrate failed", slog.Any("err", err))
		return
	}
	for id, model := range map[string]any{
		"models.User": &User{},
		"models.Post": &Post{},
	} {
		if err := oas.Register(id, model); err != nil {
			slog.Error("register model failed", slog.Any("err", err))
			return
		}
	}

	app.Provide(app.CreateAssembler)
	app.Run(
		// 启动时导出一次文档
		func(asm *oas.Assembler) oasgen.Servicer {
			return &exporter{asm: asm}
		},
		// web服务 GET /docs
		func(asm *oas.Assembler) *web.Server {
			return app.CreateWebServer(asm)
		},
	)
}

// exporter 自定义一个服务 实现oasgen.Servicer接口
type exporter struct {
	asm *oas.Assembler
}

func (e *exporter) Start(ctx context.Context) error {
	if err := oasgen.ExportDocument(ctx, e.asm); err != nil {
		slog.ErrorContext(ctx, "export failed", slog.Any("err", err))
	}
	return nil
}

func (e *exporter) Stop(context.Context) error {
	return nil
}
