package app

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"chartisan/internal/gateway/config"
	"chartisan/internal/gateway/repository/artifactrec"
	"chartisan/internal/gateway/repository/attachment"
	"chartisan/internal/gateway/repository/conversation"
)

type gatewayStores struct {
	conversations conversation.Store
	artifacts     artifactrec.Store
	attachments   attachment.Store
}

func initStores(cfg *config.Config) (*gatewayStores, error) {
	attachmentStore, err := chooseAttachmentStore(cfg)
	if err != nil {
		return nil, err
	}

	if dsn := strings.TrimSpace(cfg.DatabaseURL); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w", err)
		}
		log.Printf("conversation store: postgres")
		return &gatewayStores{
			conversations: conversation.NewPostgresStore(db),
			artifacts:     artifactrec.NewPostgresStore(db),
			attachments:   attachmentStore,
		}, nil
	}

	log.Printf("conversation store: in-memory")
	return &gatewayStores{
		conversations: conversation.NewMemoryStore(),
		artifacts:     artifactrec.NewMemoryStore(),
		attachments:   attachmentStore,
	}, nil
}

func chooseAttachmentStore(cfg *config.Config) (attachment.Store, error) {
	if cfg.Attachment.CanUseS3() {
		s3Store, err := attachment.NewS3Store(attachment.S3Config{
			Endpoint:  cfg.Attachment.Endpoint,
			Region:    cfg.Attachment.Region,
			AccessKey: cfg.Attachment.AccessKey,
			SecretKey: cfg.Attachment.SecretKey,
			Bucket:    cfg.Attachment.Bucket,
			UseSSL:    cfg.Attachment.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize attachment s3 store: %w", err)
		}
		log.Printf("attachment store: s3 bucket=%s endpoint=%s", cfg.Attachment.Bucket, cfg.Attachment.Endpoint)
		return s3Store, nil
	}
	if cfg.Attachment.Enabled {
		log.Printf("attachment store: using in-memory fallback (s3 config incomplete)")
	}
	return attachment.NewMemoryStore(), nil
}
