package client

// Static GraphQL query documents. The only dynamic piece anywhere is the
// category variable of the spectra listing query.

const microscopeQuery = `
query getMicroscope($id: String!) {
    microscope(id: $id) {
        id
        name
        opticalConfigs {
            name
            filters {
                path
                reflects
                filter {
                    id
                    name
                    manufacturer
                    bandcenter
                    bandwidth
                    edge
                    spectrum { id subtype data }
                }
            }
            camera { id name manufacturer spectrum { id subtype data } }
            light { id name manufacturer spectrum { id subtype data } }
            laser
        }
    }
}`

const dyeQuery = `
query getDye($id: Int!) {
    dye(id: $id) {
        name
        id
        exMax
        emMax
        extCoeff
        qy
        spectra { id subtype data }
    }
}`

const proteinQuery = `
query getProtein($id: String!) {
    protein(id: $id) {
        name
        id
        seq
        pdb
        genbank
        uniprot
        mw
        agg
        switchType
        primaryReference { doi }
        references { doi }
        states {
            id
            name
            exMax
            emMax
            emhex
            exhex
            extCoeff
            qy
            lifetime
            spectra { id subtype data }
        }
        defaultState {
            id
        }
    }
}`

// The API offers no top-level filter/camera/light queries, so hardware
// records are reached through the spectrum they own.
const spectrumQuery = `
query getSpectrum($id: Int!) {
    spectrum(id: $id) {
        id
        subtype
        data
        ownerFilter {
            id
            name
            manufacturer
            bandcenter
            bandwidth
            edge
            spectrum { id subtype data }
        }
        ownerCamera { id name manufacturer spectrum { id subtype data } }
        ownerLight { id name manufacturer spectrum { id subtype data } }
    }
}`

const fluorophoreLookupQuery = `{ dyes { id name slug } proteins { id name slug } }`

// spectrumLookupQueryFormat takes the one-letter category code (F, C, or
// L) inline; the remote argument is an enum literal, not a string input.
const spectrumLookupQueryFormat = `{ spectra(category: "%s") { id owner { name } } }`

const microscopeListQuery = `{ microscopes { id name } }`
