package integration

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/stacklok/game-catalog-server/test-integration/catalog-api/helpers"
)

var _ = Describe("API Source Integration", Label("api"), Ordered, func() {
	var (
		upstreamDir    string
		mirrorDir      string
		upstreamServer *helpers.ServerTestHelper
	)

	BeforeAll(func() {
		upstreamDir = createTempDir("api-upstream-")
		catalogFile := helpers.WriteCatalogFile(upstreamDir, "catalog.json", helpers.CreateStandardCatalog())
		configFile := helpers.WriteConfigYAML(upstreamDir, "upstream", helpers.FileSource(catalogFile), nil)

		upstreamServer = helpers.NewServerTestHelper(ctx, configFile)
		Expect(upstreamServer.StartServer()).To(Succeed())
		upstreamServer.WaitForServerReady(10 * time.Second)
	})

	AfterAll(func() {
		Expect(upstreamServer.StopServer()).To(Succeed())
		cleanupTempDir(upstreamDir)
	})

	BeforeEach(func() {
		mirrorDir = createTempDir("api-mirror-")
	})

	AfterEach(func() {
		cleanupTempDir(mirrorDir)
	})

	It("mirrors another catalog server", func() {
		configFile := helpers.WriteConfigYAML(mirrorDir, "mirror",
			helpers.APISource(upstreamServer.GetBaseURL()), nil)

		mirror := helpers.NewServerTestHelper(ctx, configFile)
		Expect(mirror.StartServer()).To(Succeed())
		defer func() {
			Expect(mirror.StopServer()).To(Succeed())
		}()
		mirror.WaitForServerReady(10 * time.Second)

		Expect(mirror.QueryGames(nil)).To(Equal(upstreamServer.QueryGames(nil)))
		Expect(mirror.GetFacets().Categories).To(Equal(upstreamServer.GetFacets().Categories))
		Expect(mirror.GetCategories()).To(Equal(upstreamServer.GetCategories()))

		games := mirror.QueryGames(map[string]string{"category": "Card Game"})
		Expect(helpers.Titles(games)).To(Equal([]string{"Pocket Gambit", "Solo Patience"}))
		Expect(games[1].Publisher).To(BeNil())
	})

	It("fails the sync when the upstream is unreachable", func() {
		configFile := helpers.WriteConfigYAML(mirrorDir, "unreachable",
			helpers.APISource("http://127.0.0.1:1"), &helpers.ConfigOptions{StatusDir: filepath.Join(mirrorDir, "status")})

		mirror := helpers.NewServerTestHelper(ctx, configFile)
		Expect(mirror.StartServer()).To(Succeed())
		defer func() {
			Expect(mirror.StopServer()).To(Succeed())
		}()

		Eventually(func() string {
			info := mirror.GetCatalogInfo()
			if info.SyncStatus == nil {
				return ""
			}
			return info.SyncStatus.Phase
		}, 60*time.Second, 250*time.Millisecond).Should(Equal("Failed"))
		Expect(mirror.QueryGames(nil)).To(BeEmpty())
	})
})
