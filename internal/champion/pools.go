package champion

import "github.com/lol-team-randomizer/backend/internal/engine"

// PoolByRole holds the candidate champions per role.
var PoolByRole = map[engine.Role][]string{
	engine.RoleTop: {
		"Aatrox", "Camille", "Darius", "Fiora", "Garen",
		"Irelia", "Jax", "Kayle", "Malphite", "Mordekaiser",
		"Nasus", "Ornn", "Poppy", "Renekton", "Riven",
		"Sett", "Shen", "Teemo", "Urgot", "Volibear",
	},
	engine.RoleJungle: {
		"Amumu", "Bel'Veth", "Diana", "Ekko", "Elise",
		"Evelynn", "Fiddle", "Graves", "Hecarim", "Jarvan IV",
		"Karthus", "Kayn", "Kindred", "Lee Sin", "Master Yi",
		"Nidalee", "Nunu", "Rek'Sai", "Sejuani", "Warwick",
	},
	engine.RoleMid: {
		"Ahri", "Akali", "Anivia", "Annie", "Azir",
		"Cassiopeia", "Fizz", "Galio", "Kassadin", "Katarina",
		"LeBlanc", "Lissandra", "Lux", "Malzahar", "Orianna",
		"Syndra", "Talon", "Veigar", "Viktor", "Zed",
	},
	engine.RoleADC: {
		"Aphelios", "Ashe", "Caitlyn", "Draven", "Ezreal",
		"Jhin", "Jinx", "Kai'Sa", "Kalista", "Kog'Maw",
		"Lucian", "Miss Fortune", "Samira", "Senna", "Sivir",
		"Tristana", "Twitch", "Varus", "Vayne", "Xayah",
	},
	engine.RoleSupport: {
		"Alistar", "Bard", "Blitzcrank", "Braum", "Janna",
		"Karma", "Leona", "Lulu", "Morgana", "Nami",
		"Nautilus", "Pyke", "Rakan", "Sona", "Soraka",
		"Thresh", "Yuumi", "Zyra", "Zilean", "Seraphine",
	},
}
