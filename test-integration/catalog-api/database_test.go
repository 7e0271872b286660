package integration

import (
	"database/sql"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	_ "modernc.org/sqlite"

	"github.com/stacklok/game-catalog-server/database"
	"github.com/stacklok/game-catalog-server/internal/config"
	"github.com/stacklok/game-catalog-server/test-integration/catalog-api/helpers"
)

var _ = Describe("Database Source Integration", Label("database"), func() {
	var (
		tempDir string
		dbPath  string
		sqlDB   *sql.DB
	)

	exec := func(query string, args ...any) {
		_, err := sqlDB.Exec(query, args...)
		Expect(err).NotTo(HaveOccurred())
	}

	BeforeEach(func() {
		tempDir = createTempDir("database-test-")
		dbPath = filepath.Join(tempDir, "catalog.db")

		var err error
		sqlDB, err = sql.Open("sqlite", dbPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(database.MigrateUp(sqlDB, config.DatabaseDriverSQLite)).To(Succeed())

		exec(`INSERT INTO categories (id, name, description) VALUES (1, 'Strategy', 'Plan ahead'), (2, 'Card Game', NULL)`)
		exec(`INSERT INTO publishers (id, name, description) VALUES (1, 'Tailspin Toys', NULL), (2, 'Contoso Games', NULL)`)
		exec(`INSERT INTO games (id, title, description, star_rating, category_id, publisher_id) VALUES
			(1, 'Harbor Masters', NULL, 4.6, 1, 1),
			(2, 'Pocket Gambit', NULL, 4.1, 2, 2),
			(3, 'Solo Patience', NULL, NULL, 2, NULL)`)
	})

	AfterEach(func() {
		Expect(sqlDB.Close()).To(Succeed())
		cleanupTempDir(tempDir)
	})

	It("serves the catalog stored in the database", func() {
		configFile := helpers.WriteConfigYAML(tempDir, "relational", helpers.SQLiteSource(dbPath), nil)

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()
		serverHelper.WaitForServerReady(10 * time.Second)

		Expect(helpers.Titles(serverHelper.QueryGames(nil))).To(Equal([]string{
			"Harbor Masters", "Pocket Gambit", "Solo Patience",
		}))
		games := serverHelper.QueryGames(map[string]string{"category": "Card Game", "publisher": "Contoso Games"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Pocket Gambit"}))

		categories := serverHelper.GetCategories()
		Expect(categories).To(HaveLen(2))
		Expect(categories[1].Name).To(Equal("Strategy"))
		Expect(categories[1].Description).To(Equal("Plan ahead"))
	})

	It("picks up rows added after startup", func() {
		configFile := helpers.WriteConfigYAML(tempDir, "relational", helpers.SQLiteSource(dbPath),
			&helpers.ConfigOptions{SyncInterval: "1s"})

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()
		serverHelper.WaitForServerReady(10 * time.Second)

		exec(`INSERT INTO games (id, title, description, star_rating, category_id, publisher_id)
			VALUES (4, 'Siege of Ashford', NULL, 4.8, 1, 2)`)

		Eventually(func() []string {
			return helpers.Titles(serverHelper.QueryGames(map[string]string{"category": "Strategy"}))
		}, 15*time.Second, 200*time.Millisecond).Should(Equal([]string{"Harbor Masters", "Siege of Ashford"}))
	})
})
