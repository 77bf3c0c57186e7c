package main

import (
	"flag"
	"fmt"
	"log"

	"blogcore/internal/pkg/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// Offline repair for the denormalized counters: post like/comment
// mirrors are recomputed from the engagement ledger, category post
// counts from published posts. Safe to run while the server is up;
// every statement is a single atomic UPDATE.

const mirrorRecount = `
UPDATE posts p SET
	likes_count    = cardinality(e.likers),
	comments_count = e.comment_count
FROM engagement_records e
WHERE p.id::text = e.content_id
  AND (p.likes_count <> cardinality(e.likers) OR p.comments_count <> e.comment_count)`

const categoryRecount = `
UPDATE categories c SET post_count = sub.n
FROM (
	SELECT unnest(category_refs) AS cat_id, count(*) AS n
	FROM posts
	WHERE status = 'published'
	GROUP BY 1
) sub
WHERE c.id::text = sub.cat_id AND c.post_count <> sub.n`

func main() {
	dryRun := flag.Bool("dry-run", false, "report drift without writing")
	flag.Parse()

	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if *dryRun {
		reportDrift(db)
		return
	}

	res, err := db.Exec(mirrorRecount)
	if err != nil {
		log.Fatal(err)
	}
	n, _ := res.RowsAffected()
	log.Printf("post mirrors repaired: %d", n)

	res, err = db.Exec(categoryRecount)
	if err != nil {
		log.Fatal(err)
	}
	n, _ = res.RowsAffected()
	log.Printf("category counts repaired: %d", n)
}

type drift struct {
	ContentID     string `db:"content_id"`
	LikesCount    int64  `db:"likes_count"`
	LedgerLikes   int64  `db:"ledger_likes"`
	CommentsCount int64  `db:"comments_count"`
	LedgerCount   int64  `db:"ledger_count"`
}

func reportDrift(db *sqlx.DB) {
	var rows []drift
	err := db.Select(&rows, `
		SELECT e.content_id,
		       p.likes_count, cardinality(e.likers) AS ledger_likes,
		       p.comments_count, e.comment_count AS ledger_count
		FROM posts p
		JOIN engagement_records e ON p.id::text = e.content_id
		WHERE p.likes_count <> cardinality(e.likers)
		   OR p.comments_count <> e.comment_count`)
	if err != nil {
		log.Fatal(err)
	}

	if len(rows) == 0 {
		log.Println("no drift")
		return
	}
	for _, r := range rows {
		log.Printf("%s: likes %d (ledger %d), comments %d (ledger %d)",
			r.ContentID, r.LikesCount, r.LedgerLikes, r.CommentsCount, r.LedgerCount)
	}
}
