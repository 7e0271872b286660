package integration

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stacklok/game-catalog-server/test-integration/catalog-api/helpers"
)

var _ = Describe("Git Source Integration", Label("git"), func() {
	var (
		tempDir string
		gitRepo *helpers.GitTestRepository
	)

	BeforeEach(func() {
		tempDir = createTempDir("git-test-")
		gitRepo = helpers.CreateGitRepository(tempDir)
		gitRepo.CommitCatalog("catalogs/games.json", helpers.CreateStandardCatalog(), "Add standard catalog")
	})

	AfterEach(func() {
		cleanupTempDir(tempDir)
	})

	It("serves the catalog committed to the branch", func() {
		configFile := helpers.WriteConfigYAML(tempDir, "git-catalog",
			helpers.GitSource(gitRepo.CloneURL, gitRepo.Branch(), "catalogs/games.json"), nil)

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()
		serverHelper.WaitForServerReady(30 * time.Second)

		games := serverHelper.QueryGames(map[string]string{"category": "Strategy", "publisher": "Tailspin Toys"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Harbor Masters"}))

		info := serverHelper.GetCatalogInfo()
		Expect(info.TotalGames).To(Equal(5))
		Expect(info.Source).To(ContainSubstring(gitRepo.CloneURL))
	})

	It("follows new commits on the branch", func() {
		configFile := helpers.WriteConfigYAML(tempDir, "git-catalog",
			helpers.GitSource(gitRepo.CloneURL, gitRepo.Branch(), "catalogs/games.json"),
			&helpers.ConfigOptions{SyncInterval: "1s"})

		serverHelper := helpers.NewServerTestHelper(ctx, configFile)
		Expect(serverHelper.StartServer()).To(Succeed())
		defer func() {
			Expect(serverHelper.StopServer()).To(Succeed())
		}()
		serverHelper.WaitForServerReady(30 * time.Second)

		updated := helpers.CreateStandardCatalog()
		updated.Games = append(updated.Games, helpers.Game{
			ID:        6,
			Title:     "Night Market",
			Category:  &helpers.FacetRef{ID: helpers.CategoryPuzzle, Name: "Puzzle"},
			Publisher: &helpers.FacetRef{ID: helpers.PublisherFabrikam, Name: "Fabrikam"},
		})
		gitRepo.CommitCatalog("catalogs/games.json", updated, "Add Night Market")

		Eventually(func() []string {
			return serverHelper.GetFacets().Publishers
		}, 30*time.Second, 250*time.Millisecond).Should(Equal([]string{"Contoso Games", "Fabrikam", "Tailspin Toys"}))

		games := serverHelper.QueryGames(map[string]string{"publisher": "Fabrikam"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Night Market"}))
	})
})
