package integration

import (
	"net/http"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stacklok/game-catalog-server/test-integration/catalog-api/helpers"
)

var _ = Describe("Game filtering", Label("filtering"), Ordered, func() {
	var (
		tempDir      string
		serverHelper *helpers.ServerTestHelper
	)

	BeforeAll(func() {
		tempDir = createTempDir("filtering-test-")
		catalogFile := helpers.WriteCatalogFile(tempDir, "catalog.json", helpers.CreateStandardCatalog())
		configFile := helpers.WriteConfigYAML(tempDir, "filtering", helpers.FileSource(catalogFile), nil)

		serverHelper = helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		serverHelper.WaitForServerReady(10 * time.Second)
	})

	AfterAll(func() {
		Expect(serverHelper.StopServer()).To(Succeed())
		cleanupTempDir(tempDir)
	})

	It("offers every category and publisher as a filter option", func() {
		facets := serverHelper.GetFacets()
		Expect(facets.SnapshotID).NotTo(BeEmpty())
		Expect(facets.Categories).To(Equal([]string{"Card Game", "Puzzle", "Strategy"}))
		Expect(facets.Publishers).To(Equal([]string{"Contoso Games", "Tailspin Toys"}))
	})

	It("returns the whole catalog without filters", func() {
		games := serverHelper.QueryGames(nil)
		Expect(helpers.Titles(games)).To(Equal([]string{
			"Harbor Masters", "Pocket Gambit", "Tile Cascade", "Siege of Ashford", "Solo Patience",
		}))
	})

	It("filters games by category", func() {
		facets := serverHelper.GetFacets()
		for _, category := range facets.Categories {
			games := serverHelper.QueryGames(map[string]string{"category": category})
			Expect(games).NotTo(BeEmpty())
			for _, g := range games {
				Expect(g.Category).NotTo(BeNil())
				Expect(g.Category.Name).To(Equal(category))
			}
		}

		games := serverHelper.QueryGames(map[string]string{"category": "Strategy"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Harbor Masters", "Siege of Ashford"}))
	})

	It("filters games by publisher", func() {
		games := serverHelper.QueryGames(map[string]string{"publisher": "Tailspin Toys"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Harbor Masters", "Tile Cascade"}))
		for _, g := range games {
			Expect(g.Publisher.Name).To(Equal("Tailspin Toys"))
		}
	})

	It("combines category and publisher filters", func() {
		games := serverHelper.QueryGames(map[string]string{"category": "Strategy", "publisher": "Contoso Games"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Siege of Ashford"}))

		games = serverHelper.QueryGames(map[string]string{"category": "Puzzle", "publisher": "Contoso Games"})
		Expect(games).To(BeEmpty())
	})

	It("keeps the filter options unchanged while filtering", func() {
		before := serverHelper.GetFacets()
		_ = serverHelper.QueryGames(map[string]string{"category": "Puzzle"})
		after := serverHelper.GetFacets()
		Expect(after.Categories).To(Equal(before.Categories))
		Expect(after.Publishers).To(Equal(before.Publishers))
	})

	It("returns no games for an unknown label", func() {
		Expect(serverHelper.QueryGames(map[string]string{"category": "Racing"})).To(BeEmpty())
	})

	It("treats an empty parameter as no filter", func() {
		Expect(serverHelper.QueryGames(map[string]string{"category": ""})).To(HaveLen(5))
	})

	It("filters by category and publisher ids", func() {
		games := serverHelper.QueryGames(map[string]string{"category_id": strconv.Itoa(helpers.CategoryCardGame)})
		Expect(helpers.Titles(games)).To(Equal([]string{"Pocket Gambit", "Solo Patience"}))

		games = serverHelper.QueryGames(map[string]string{
			"category_id":  strconv.Itoa(helpers.CategoryStrategy),
			"publisher_id": strconv.Itoa(helpers.PublisherTailspin),
		})
		Expect(helpers.Titles(games)).To(Equal([]string{"Harbor Masters"}))

		Expect(serverHelper.QueryGames(map[string]string{"publisher_id": "999"})).To(BeEmpty())
	})

	It("rejects non-integer ids", func() {
		resp, err := serverHelper.Get("/api/games?category_id=abc")
		Expect(err).NotTo(HaveOccurred())
		defer func() {
			_ = resp.Body.Close()
		}()
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
	})

	It("serves a game without publisher with a null publisher", func() {
		var solo *helpers.GameResponse
		for _, g := range serverHelper.QueryGames(nil) {
			if g.ID == 5 {
				solo = &g
			}
		}
		Expect(solo).NotTo(BeNil())
		Expect(solo.Publisher).To(BeNil())
		Expect(solo.Category.Name).To(Equal("Card Game"))
	})

	It("looks single games up by id", func() {
		resp, err := serverHelper.Get("/api/games/4")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		_ = resp.Body.Close()

		resp, err = serverHelper.Get("/api/games/42")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound))
		_ = resp.Body.Close()
	})

	It("lists categories and publishers with game counts", func() {
		categories := serverHelper.GetCategories()
		Expect(categories).To(HaveLen(3))
		Expect(categories[2].Name).To(Equal("Strategy"))
		Expect(categories[2].ID).To(Equal(helpers.CategoryStrategy))
		Expect(categories[2].Description).To(Equal("Plan ahead"))
		Expect(categories[2].GameCount).To(Equal(2))

		publishers := serverHelper.GetPublishers()
		Expect(publishers).To(HaveLen(2))
		Expect(publishers[1].Name).To(Equal("Tailspin Toys"))
		Expect(publishers[1].GameCount).To(Equal(2))
	})
})
